// Package cli implements catalogctl, an offline tool that runs the catalog
// filter engine and journey resolver against JSON fixtures.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// App holds state shared by every subcommand.
type App struct {
	Now func() time.Time
}

// NewApp returns an App using the wall clock.
func NewApp() *App {
	return &App{Now: time.Now}
}

// NewRootCmd builds the catalogctl command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect course catalogs and student journeys offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newFilterCmd(app),
		newPresetsCmd(app),
		newEligibleCmd(app),
		newJourneyCmd(app),
	)
	return root
}

func readJSONFile(path string, dest interface{}) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// resolveNow parses --now as RFC3339 or a bare date, falling back to the
// app clock when unset.
func (a *App) resolveNow(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return a.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: use RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
