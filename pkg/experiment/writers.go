package experiment

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// writeResults writes the result table in the configured format.
func (r *Runner) writeResults(outputDir string, rows []ResultRow) error {
	switch r.config.OutputFormat {
	case "csv", "":
		return writeCSV(filepath.Join(outputDir, "results.csv"), rows)
	case "json":
		return writeJSON(filepath.Join(outputDir, "results.json"), rows)
	default:
		return fmt.Errorf("unsupported output format: %s", r.config.OutputFormat)
	}
}

func writeCSV(path string, rows []ResultRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"Network", "Method", "Alpha", "Metric", "Original", "Reduced", "Reduction (%)"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Network,
			row.Method,
			strconv.FormatFloat(row.Ratio, 'g', -1, 64),
			row.Metric,
			strconv.FormatFloat(row.Original, 'g', -1, 64),
			strconv.FormatFloat(row.Reduced, 'g', -1, 64),
			strconv.FormatFloat(row.ReductionPct, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, rows []ResultRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeSummary writes a human-readable run summary.
func writeSummary(path string, config Config, summary *Summary) error {
	var sb strings.Builder
	sb.WriteString("Graph Reduction Experiment Summary\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Run ID: %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Networks processed: %d\n", summary.Networks))
	sb.WriteString(fmt.Sprintf("Experiments: %d\n", summary.Experiments))
	sb.WriteString(fmt.Sprintf("Result rows: %d\n", summary.ResultRows))
	sb.WriteString(fmt.Sprintf("Methods: %s\n", strings.Join(config.Methods, ", ")))
	sb.WriteString(fmt.Sprintf("Ratios: %v\n", config.Ratios))
	sb.WriteString(fmt.Sprintf("Runtime: %d ms\n", summary.RuntimeMS))
	if len(summary.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, msg := range summary.Errors {
			sb.WriteString("  " + msg + "\n")
		}
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
