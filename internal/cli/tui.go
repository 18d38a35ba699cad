package cli

import (
	"os"

	"persontable/internal/engine"
	"persontable/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errNotATerminal = errors.New("not a terminal")

var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newTUICommand(a *app) *cobra.Command {
	var data string
	var legacy bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the table in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.Wrap(errNotATerminal, "tui needs an interactive terminal, try list")
			}
			if data != "" {
				a.cfg.Table.DataFile = data
			}
			if legacy {
				a.cfg.Table.Mode = string(engine.ModeLegacy)
			}

			view, err := a.newView()
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(tui.New(view), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "CSV file of people (overrides table.data_file)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "use the legacy in-place filtering view")
	return cmd
}

// newView loads the store and builds the configured view over it.
func (a *app) newView() (engine.View, error) {
	opts, err := a.viewOptions()
	if err != nil {
		return nil, err
	}
	mode, err := engine.ParseMode(a.cfg.Table.Mode)
	if err != nil {
		return nil, err
	}
	store, err := a.loadStore()
	if err != nil {
		return nil, err
	}
	return engine.NewView(mode, store, opts)
}
