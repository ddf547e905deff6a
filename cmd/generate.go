package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formdraft/formdraft/config"
	"github.com/formdraft/formdraft/prompt"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a draft from a template and field values",
	Long: `Render a template with the given field values, send it to the
configured provider and print the draft to stdout.

Field values are passed as repeated --field flags:

  formdraft generate --template email \
    --field sender_name="Jordan Lee" \
    --field recipient_name="Dr. Garcia" \
    --field purpose="recommendation request" \
    --field tone=Formal \
    --field key_points="mentions coursework"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}

		templateID, _ := cmd.Flags().GetString("template")
		rawFields, _ := cmd.Flags().GetStringArray("field")

		fields := prompt.FieldValues{}
		for _, raw := range rawFields {
			name, value, found := strings.Cut(raw, "=")
			if !found {
				return fmt.Errorf("invalid --field %q, expected name=value", raw)
			}
			fields[name] = value
		}

		result := p.Submit(cmd.Context(), templateID, fields)
		if !result.Ok() {
			return errors.New(result.Failure.String())
		}

		fmt.Println(result.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Add flags specific to generate command
	generateCmd.Flags().StringP("template", "t", "", "Template to render")
	generateCmd.Flags().StringArrayP("field", "f", nil, "Field value as name=value (repeatable)")
	generateCmd.MarkFlagRequired("template")
}
