package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytscout",
	Short: "Multi-keyword YouTube search with API key rotation",
	Long: `ytscout searches YouTube across multiple keywords at once, enriches every
hit with video and channel details, and renders each result as a delimited
summary line. It manages a pool of Data API keys, rotating to the next key
when one runs out of quota, and can page through a video's comments up to a
target count.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
