// Package output renders snapshot listings and recovery results as a table,
// JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/shadowforensic/internal/services"
	"github.com/vvka-141/shadowforensic/internal/tui"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Format selects a renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted format names, for validation and completion.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// EmptyCatalogMessage is printed by the table renderer for an empty listing.
const EmptyCatalogMessage = "No shadow copies found."

const timeLayout = "2006-01-02 15:04:05"

// ParseFormat validates s. Empty means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s): %w",
			s, strings.Join(Formats, ", "), shadowforensic.ErrInvalidConfig)
	}
}

// WriteSnapshots renders the snapshot catalog.
func WriteSnapshots(w io.Writer, format Format, records []shadowforensic.SnapshotRecord) error {
	if records == nil {
		records = []shadowforensic.SnapshotRecord{}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, EmptyCatalogMessage)
		return err
	}

	table := newTable(w)
	table.SetHeader([]string{"ID", "Volume", "Created", "Device"})
	for _, r := range records {
		table.Append([]string{r.ID, r.Volume, r.CreatedAt.Format(timeLayout), r.DeviceObject})
	}
	table.Render()
	return nil
}

// WriteRecoverResult renders the outcome of a recover run.
func WriteRecoverResult(w io.Writer, format Format, result services.RecoverResult) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	}

	report := result.Report
	summary := fmt.Sprintf("Recovered %d file(s), %s, from %s into %s in %s",
		report.RecoveredCount(), tui.FormatBytes(report.Bytes), result.Snapshot.ID,
		result.Output, report.Duration.Round(time.Millisecond))

	style := tui.SuccessStyle
	if report.FailedCount() > 0 {
		style = tui.WarningStyle
	}
	fmt.Fprintln(w, style.Render(summary))
	fmt.Fprintf(w, "%s %d failed %s %d skipped %s %d excluded by filters\n",
		tui.SymbolBullet, report.FailedCount(),
		tui.SymbolBullet, len(report.Skipped),
		tui.SymbolBullet, report.Excluded)

	if len(report.Failures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, tui.ErrorStyle.Render("Failures:"))
		table := newTable(w)
		table.SetHeader([]string{"Path", "Reason", "Error"})
		for _, f := range report.Failures {
			table.Append([]string{f.Path, string(f.Reason), f.Error})
		}
		table.Render()
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, tui.WarningStyle.Render("Skipped:"))
		table := newTable(w)
		table.SetHeader([]string{"Path", "Reason"})
		for _, s := range report.Skipped {
			table.Append([]string{s.Path, s.Reason})
		}
		table.Render()
	}
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	return table
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
