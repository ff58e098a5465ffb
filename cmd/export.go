package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

var (
	exportDate   string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the week's timesheet",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Any date in the week to export (YYYY-MM-DD); defaults to today's week")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file for xlsx (default timesheet-<week>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	base := draftBase()
	g := requireDraft(base, resolveWeek(exportDate))

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(g.Rows, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "md":
		printGrid(g)
	case "xlsx":
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("timesheet-%s.xlsx", timecalc.WeekLabel(g.WeekStart))
		}
		if err := writeXLSX(g, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Printf("Wrote %s\n", out)
	default: // csv
		writeCSV(g)
	}
	return nil
}

func writeCSV(g *grid.Grid) {
	dates := g.Dates()
	fmt.Print("task")
	for _, date := range dates {
		fmt.Printf(",%s", date)
	}
	fmt.Println(",total")
	for _, row := range g.Rows {
		fmt.Print(csvEscape(row.TaskName))
		for _, date := range dates {
			fmt.Printf(",%s", timecalc.FormatHours(row.Hours[date]))
		}
		fmt.Printf(",%s\n", timecalc.FormatHours(g.RowTotal(row)))
	}
}

// csvEscape quotes a field when it contains separators or quotes.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func writeXLSX(g *grid.Grid, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	dates := g.Dates()

	set := func(col, rowNum int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, rowNum)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	if err := set(1, 1, "Task"); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}
	for i, date := range dates {
		if err := set(i+2, 1, date); err != nil {
			return fmt.Errorf("writing xlsx header: %w", err)
		}
	}
	if err := set(len(dates)+2, 1, "Total"); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	for r, row := range g.Rows {
		if err := set(1, r+2, row.TaskName); err != nil {
			return fmt.Errorf("writing xlsx row: %w", err)
		}
		for i, date := range dates {
			if err := set(i+2, r+2, row.Hours[date]); err != nil {
				return fmt.Errorf("writing xlsx row: %w", err)
			}
		}
		if err := set(len(dates)+2, r+2, g.RowTotal(row)); err != nil {
			return fmt.Errorf("writing xlsx row: %w", err)
		}
	}

	totalRow := len(g.Rows) + 2
	if err := set(1, totalRow, "Day total"); err != nil {
		return fmt.Errorf("writing xlsx totals: %w", err)
	}
	var weekTotal float64
	for i, date := range dates {
		t := g.DayTotal(date)
		weekTotal += t
		if err := set(i+2, totalRow, t); err != nil {
			return fmt.Errorf("writing xlsx totals: %w", err)
		}
	}
	if err := set(len(dates)+2, totalRow, weekTotal); err != nil {
		return fmt.Errorf("writing xlsx totals: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
