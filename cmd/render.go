package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"gitlab.com/railsync.net/internal/domain"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passedStyle = cellStyle.Foreground(lipgloss.Color("2"))
	failedStyle = cellStyle.Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func writeRun(w io.Writer, r *domain.Run, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	case formatTable:
		_, err := fmt.Fprintln(w, runTable(r))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func runTable(r *domain.Run) string {
	state := "open"
	if r.IsCompleted {
		state = "completed"
	}
	rows := [][]string{
		{"ID", strconv.Itoa(r.ID)},
		{"Name", r.Name},
		{"State", state},
		{"Passed", strconv.Itoa(r.PassedCount)},
		{"Failed", strconv.Itoa(r.FailedCount)},
		{"Retest", strconv.Itoa(r.RetestCount)},
		{"Blocked", strconv.Itoa(r.BlockedCount)},
		{"Untested", strconv.Itoa(r.UntestedCount)},
	}
	if r.URL != "" {
		rows = append(rows, []string{"URL", r.URL})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// renderReport prints the records sent for one spec and how the cycle ended
func renderReport(report *domain.SyncReport) string {
	summary := fmt.Sprintf("%s: %s (run %d, %d screenshots uploaded, %d failed)",
		report.Spec, report.Outcome, report.RunID, report.Uploaded, report.UploadFails)
	if report.Error != "" {
		summary += " " + report.Error
	}
	if len(report.Records) == 0 {
		return mutedStyle.Render(summary)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("CASE", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col != 1 || row < 0 || row >= len(report.Records) {
				return cellStyle
			}
			if report.Records[row].StatusID == domain.StatusPassed {
				return passedStyle
			}
			return failedStyle
		})
	for _, rec := range report.Records {
		t.Row(fmt.Sprintf("C%d", rec.CaseID), rec.StatusID.String())
	}

	return summary + "\n" + t.String()
}
