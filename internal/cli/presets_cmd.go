package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/cli/formatter"
)

func newPresetsCmd(app *App) *cobra.Command {
	var file string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List filter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := loadPresets(file)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), presets)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderPresets(presets, catalog.ActiveFilterCount))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with extra presets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
