package cmd

import (
	"fmt"

	"github.com/Iron-Ham/groundcrew/internal/logging"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List log categories",
	Long: `List the log category names accepted by logging.categories.

"all" is also accepted and enables every category.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

var categoriesOutput string

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVarP(&categoriesOutput, "output", "o", outputTable, "Output format (table/json/yaml)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	if err := checkOutput(categoriesOutput); err != nil {
		return err
	}

	names := logging.CategoryNames()
	out := cmd.OutOrStdout()

	if categoriesOutput != outputTable {
		return writeStructured(out, categoriesOutput, names)
	}

	// Mark the categories enabled by the current configuration
	active := logging.CategoryAll
	if cfg, err := loadConfig(); err == nil {
		if _, cats, err := cfg.Logging.Filter(); err == nil {
			active = cats
		}
	}

	rows := make([][]string, len(names))
	for i, name := range names {
		cat, _ := logging.ParseCategory(name)
		state := "off"
		if active.Has(cat) {
			state = "on"
		}
		rows[i] = []string{name, state}
	}
	if err := writeTable(out, []string{"CATEGORY", "ACTIVE"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d of %d categories active\n", active.Len(), len(names))
	return err
}
