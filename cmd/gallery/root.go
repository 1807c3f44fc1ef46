package main

import (
	"os"

	"github.com/spf13/cobra"

	"finitefield.org/glb-gallery/internal/platform/config"
)

var (
	envFile     string
	manifestRef string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Browse a catalogue of GLB models",
	Long:  "Serve, list and browse the 3D models named by a gallery manifest.",
	// Launch the terminal browser by default
	RunE: func(cmd *cobra.Command, args []string) error {
		return browseCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with GALLERY_* overrides")
	rootCmd.PersistentFlags().StringVarP(&manifestRef, "manifest", "m", "", "manifest path, http(s) URL or gs://bucket/object")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
}

// loadConfig resolves configuration with command-line flags taking precedence.
func loadConfig() (config.Config, error) {
	overrides := map[string]string{}
	if manifestRef != "" {
		overrides["GALLERY_MANIFEST"] = manifestRef
	}
	if logLevel != "" {
		overrides["GALLERY_LOG_LEVEL"] = logLevel
	}
	return config.Load(config.WithEnvFile(envFile), config.WithEnvMap(overrides))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
