package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the active classification marker lists",
	Long: `Markers prints the marker lists the affiliation classifier will use,
after config file overrides, as YAML. Paste the output into
pharma-papers.yaml under "classifier:" to tune them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(classifierConfig())
	},
}

func init() {
	rootCmd.AddCommand(markersCmd)
}
