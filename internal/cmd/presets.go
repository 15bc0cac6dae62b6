package cmd

import (
	"github.com/Iron-Ham/groundcrew/internal/logging"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List logging presets",
	Long: `List the logging presets and the categories each one enables.

A preset is selected with logging.preset in the config file or the
GROUNDCREW_LOGGING_PRESET environment variable. Presets without a level
keep the configured minimum level.

Examples:
  groundcrew presets
  groundcrew presets --output yaml`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

var presetsOutput string

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().StringVarP(&presetsOutput, "output", "o", outputTable, "Output format (table/json/yaml)")
}

// presetView is the serialized form of a preset
type presetView struct {
	Name       string   `json:"name" yaml:"name"`
	Categories []string `json:"categories" yaml:"categories"`
	Level      string   `json:"level,omitempty" yaml:"level,omitempty"`
}

func presetViews() []presetView {
	presets := logging.Presets()
	views := make([]presetView, len(presets))
	for i, p := range presets {
		views[i] = presetView{Name: p.Name, Categories: p.Categories.Names()}
		if p.SetsLevel {
			views[i].Level = p.Level.String()
		}
	}
	return views
}

func runPresets(cmd *cobra.Command, args []string) error {
	if err := checkOutput(presetsOutput); err != nil {
		return err
	}

	views := presetViews()
	out := cmd.OutOrStdout()

	if presetsOutput != outputTable {
		return writeStructured(out, presetsOutput, views)
	}

	rows := make([][]string, len(views))
	for i, v := range views {
		level := v.Level
		if level == "" {
			level = "-"
		}
		cats := logging.CategoryNone
		if p, err := logging.LookupPreset(v.Name); err == nil {
			cats = p.Categories
		}
		rows[i] = []string{v.Name, level, cats.String()}
	}
	return writeTable(out, []string{"PRESET", "LEVEL", "CATEGORIES"}, rows)
}
