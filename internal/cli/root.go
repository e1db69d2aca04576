package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"searchlab/config"
	applog "searchlab/internal/platform/log"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "searchlab",
	Short: "Document retrieval lab - chunk, index, search and benchmark",
	Long: `searchlab turns plain-text documents into chunks, builds one of several
index structures over them, runs ranked search and scores the results with
standard information-retrieval metrics.

Example usage:
  searchlab search -d ./docs -q "error handling"   # Ad-hoc ranked search
  searchlab bench -d ./docs                        # Sweep chunker x indexer matrix
  searchlab serve                                  # Live per-session search API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		applog.Init(applog.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./searchlab.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
