package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formdraft/formdraft/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of formdraft`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FormDraft v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
