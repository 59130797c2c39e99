package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/runnerr0/historygrab/internal/extract"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func statusCell(s extract.Status) string {
	switch s {
	case extract.StatusSaved:
		return okStyle.Render(string(s))
	case extract.StatusNotFound:
		return dimStyle.Render("not found")
	case extract.StatusLocked:
		return warnStyle.Render(string(s))
	default:
		return errStyle.Render(string(s))
	}
}

// Summary writes one row per result.
func Summary(w io.Writer, results []extract.Result) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Browser", "Status", "Rows", "Output")

	for _, r := range results {
		rows := ""
		detail := ""
		switch r.Status {
		case extract.StatusSaved:
			rows = strconv.Itoa(r.Rows)
			detail = r.Output
			if r.Flagged > 0 {
				detail += fmt.Sprintf(" (%d flagged)", r.Flagged)
			}
		case extract.StatusNotFound:
			detail = "-"
		default:
			if r.Err != nil {
				detail = r.Err.Error()
			}
		}
		t.Row(r.Source.Browser, statusCell(r.Status), rows, detail)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// SourceRow is one line of the sources listing.
type SourceRow struct {
	ID       string
	Browser  string
	Location string
	Present  bool
}

// Sources writes the descriptor listing for the current platform.
func Sources(w io.Writer, rows []SourceRow) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Browser", "Store", "Found")

	for _, r := range rows {
		found := dimStyle.Render("no")
		if r.Present {
			found = okStyle.Render("yes")
		}
		t.Row(r.ID, r.Browser, r.Location, found)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
