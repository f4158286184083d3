// Package cli implements the pathplanner command line.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
)

// rootCmd is the root command for pathplanner.
var rootCmd = &cobra.Command{
	Use:     "pathplanner",
	Version: "dev",
	Short:   "Plan routes through a graph of BJJ positions",
	Long: `pathplanner builds game plans: given a graph of positions connected by
techniques and a handful of positions to drill, it orders them with a
nearest-neighbor heuristic and links them with the fewest transitions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "pathplanner.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print machine-readable JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
