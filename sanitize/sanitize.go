// Package sanitize scrubs model-generated markup before it reaches a
// renderer. Model output is untrusted input: the prompt embeds
// user-supplied text that can steer the model into emitting executable
// markup.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/formdraft/formdraft/prompt"
)

// Sanitizer applies the markup allowlist. The underlying policy is
// built once and is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer with the formdraft allowlist: structural tags
// only, link attributes restricted to href/target/style, and no
// javascript: URLs. Script and style bodies are dropped entirely;
// other disallowed tags are removed while their inner text is kept.
func New() *Sanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("div", "span", "p", "a", "h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("href", "target", "style").OnElements("a")
	policy.AllowURLSchemes("http", "https", "mailto")

	return &Sanitizer{policy: policy}
}

// Output sanitizes text according to the template's output mode.
// plain_text is returned unchanged; markup goes through the allowlist.
// Output never fails; the worst case is an empty string.
func (s *Sanitizer) Output(text string, mode prompt.OutputMode) string {
	if mode != prompt.OutputMarkup {
		return text
	}
	return s.policy.Sanitize(text)
}
