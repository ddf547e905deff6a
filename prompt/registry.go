package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/formdraft/formdraft/logger"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTemplate is returned by Get for ids never registered.
var ErrUnknownTemplate = errors.New("unknown template")

// Registry maps template ids to templates. It is populated at startup
// (built-ins first, then any template directory) and read-only
// afterwards, so lookups need no locking.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// Register validates the template and adds it to the registry.
// Registering an id twice is an error: variants are distinct data, not
// overrides.
func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("template %q already registered", t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

// Get returns the template registered under id.
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// List returns all registered templates in stable id order.
func (r *Registry) List() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the registered template ids in stable order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadDir registers every *.yml / *.yaml template file found directly
// in dir. A file that fails structural validation aborts the load with
// the file name in the error, so a bad template is caught at startup
// rather than at first submit.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template file %s: %w", path, err)
		}

		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("parsing template file %s: %w", path, err)
		}

		if err := r.Register(&t); err != nil {
			return fmt.Errorf("template file %s: %w", path, err)
		}
		logger.Infof("Registered template %q from %s", t.ID, path)
	}

	return nil
}
