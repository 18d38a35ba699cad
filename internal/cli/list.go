package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/charmbracelet/huh"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type listOptions struct {
	page        int
	pageSize    int
	sort        string
	order       string
	name        string
	gender      []string
	search      string
	hideID      bool
	hideIDSet   bool
	interactive bool
}

func newListCommand(a *app) *cobra.Command {
	o := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.interactive {
				if !isTerminal(os.Stdin) {
					return errors.Wrap(errNotATerminal, "--interactive")
				}
				if err := o.prompt(); err != nil {
					return err
				}
			}
			if o.pageSize == 0 {
				o.pageSize = a.cfg.Table.PageSize
			}
			o.hideIDSet = cmd.Flags().Changed("hide-id")

			view, err := a.newView()
			if err != nil {
				return err
			}
			page, err := o.run(view)
			if err != nil {
				return err
			}
			renderPage(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().SortFlags = false
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "rows per page (overrides table.page_size)")
	cmd.Flags().StringVar(&o.sort, "sort", "", `sort column ("id", "name" or "age")`)
	cmd.Flags().StringVar(&o.order, "order", string(models.SortAscend), `sort order ("ascend" or "descend")`)
	cmd.Flags().StringVar(&o.name, "name", "", "name filter text")
	cmd.Flags().StringSliceVar(&o.gender, "gender", nil, "gender filter values (comma-separated)")
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "global search text")
	cmd.Flags().BoolVar(&o.hideID, "hide-id", false, "hide the ID column (overrides table.show_id_column)")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "ask for filters before listing")
	return cmd
}

// prompt fills the filters from an interactive form.
func (o *listOptions) prompt() error {
	genderOptions := make([]huh.Option[string], 0, len(engine.GenderOptions))
	for _, g := range engine.GenderOptions {
		genderOptions = append(genderOptions,
			huh.NewOption(g.Text, g.Value).Selected(slices.Contains(o.gender, g.Value)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Global search over names").
				Value(&o.search),
			huh.NewInput().
				Title("Name").
				Description("Name column filter").
				Value(&o.name),
			huh.NewMultiSelect[string]().
				Title("Gender").
				Options(genderOptions...).
				Value(&o.gender),
		),
	)
	return form.Run()
}

// run replays the options against view as the interactions a user would
// make: filters, then search, then page size, sort and page.
func (o *listOptions) run(view engine.View) (*models.Page, error) {
	if o.name != "" {
		if err := view.ApplyColumnFilter(engine.ColumnName, []string{o.name}); err != nil {
			return nil, err
		}
	}
	if len(o.gender) > 0 {
		if err := view.ApplyColumnFilter(engine.ColumnGender, o.gender); err != nil {
			return nil, err
		}
	}
	if o.search != "" {
		view.SetSearchText(o.search)
		view.Search()
	}
	// without --hide-id the column follows table.show_id_column
	if o.hideIDSet && o.hideID == view.State().IDColumnVisible {
		view.ToggleIDColumn()
	}

	sorter := models.Sorter{}
	if o.sort != "" {
		sorter = models.Sorter{ColumnKey: o.sort, Order: models.SortOrder(o.order)}
	}

	state := view.State()
	if o.pageSize != state.Pagination.PageSize {
		err := view.Change(engine.ChangeEvent{
			Pagination: models.Pagination{Current: 1, PageSize: o.pageSize},
			Filters:    state.Filters,
			Sorter:     state.Sorter,
		})
		if err != nil {
			return nil, err
		}
	}
	err := view.Change(engine.ChangeEvent{
		Pagination: models.Pagination{Current: o.page, PageSize: o.pageSize},
		Filters:    view.State().Filters,
		Sorter:     sorter,
	})
	if err != nil {
		return nil, err
	}
	return view.Page()
}

func renderPage(out io.Writer, page *models.Page) {
	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	header := make([]string, 0, len(page.Columns))
	for _, col := range page.Columns {
		header = append(header, col.Title)
	}
	table.SetHeader(header)

	for _, rec := range page.Data {
		row := make([]string, 0, len(page.Columns))
		for _, col := range page.Columns {
			row = append(row, engine.CellText(rec, col.Key))
		}
		table.Append(row)
	}

	p := page.Pagination
	table.SetCaption(true, fmt.Sprintf("page %d/%d · %d records · page size %d",
		p.Current, engine.LastPage(p.Total, p.PageSize), p.Total, p.PageSize))
	table.Render()
}
