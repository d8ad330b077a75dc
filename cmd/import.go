package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site/content"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Imports markdown posts into the database",
	Long: `The import command upserts every markdown post under dir (CONTENT_DIR by
default) by slug. Front matter supplies the title, slug, tags and publish state.
With --watch it keeps running and re-imports after every change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := appConfig.ContentDir
		if len(args) == 1 {
			dir = args[0]
		}

		if err := appConfig.RequireDatabase(); err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		importer := content.NewImporter(dir, db.BlogPostRepo())
		if importWatch {
			return importer.Watch(cmd.Context())
		}

		report, err := importer.Run(cmd.Context())
		log.Info().Int("imported", report.Imported).Int("failed", report.Failed).Msg("Import finished")
		return err
	},
}

func init() {
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "keep watching the directory and import on change")
}
