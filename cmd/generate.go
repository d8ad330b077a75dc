package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site/models"
)

var (
	generateOut        string
	generateReportOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates typed query helpers from the models",
	Long: `The generate command migrates the schema, prints the column mismatch report and
writes gorm/gen query helpers. With --report-only it only prints the report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.RequireDatabase(); err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if generateReportOnly {
			_, err := models.GenerateColumnMismatchReport(db.GetDB())
			return err
		}
		return models.GenerateModels(db.GetDB(), generateOut)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "./query", "output directory for the query helpers")
	generateCmd.Flags().BoolVar(&generateReportOnly, "report-only", false, "only print the column mismatch report")
}
