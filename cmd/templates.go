package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formdraft/formdraft/common"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Long: `Print the registered templates with their fields. Does not need a
provider credential; only the registry is consulted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = os.Getenv("FORMDRAFT_TEMPLATES_DIR")
		}

		registry, err := newRegistry(dir)
		if err != nil {
			return err
		}

		full, _ := cmd.Flags().GetBool("full")

		for _, t := range registry.List() {
			fmt.Printf("%s (%s)\n", t.ID, t.OutputMode)
			if t.Title != "" {
				fmt.Printf("  %s\n", t.Title)
			}

			for _, slot := range t.Slots {
				requirement := "optional"
				if slot.Required {
					requirement = "required"
				}
				line := fmt.Sprintf("  %-16s %s, %s", slot.Name, slot.Kind, requirement)
				if len(slot.Choices) > 0 {
					line += ": " + strings.Join(slot.Choices, ", ")
				}
				fmt.Println(line)
			}

			if full {
				fmt.Println()
				for _, line := range strings.Split(common.WrapString(t.Body, 76), "\n") {
					fmt.Println("  " + line)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().StringP("dir", "d", "", "Directory of template yaml files to load alongside the built-ins")
	templatesCmd.Flags().Bool("full", false, "Print each template body as well")
}
