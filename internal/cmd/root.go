package cmd

import (
	"github.com/Iron-Ham/groundcrew/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "groundcrew",
	Short: "Ground-handling event hub with category-filtered logging",
	Long: `Groundcrew dispatches typed aircraft ground-handling events between
producers and consumers and records them through a logging service that
filters by category and severity.

Logging presets select the categories relevant to one ground service,
e.g. "refueling" or "boarding", without editing code.`,
	SilenceUsage: true,
}

// cfgFile is the --config flag value
var cfgFile string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/groundcrew/config.yaml)")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// GROUNDCREW_LOGGING_PRESET overrides logging.preset, and so on
	config.BindEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
