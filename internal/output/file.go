package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ConsoleOutput prints the report as indented JSON.
type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteResult(_ context.Context, report Report) error {
	enc := json.NewEncoder(c.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput writes one JSON document per run under basePath/folder.
type JSONOutput struct {
	basePath string
	folder   string
	written  []string
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{basePath: basePath, folder: folder}
}

func (j *JSONOutput) WriteResult(_ context.Context, report Report) error {
	path := report.localPath(j.basePath, j.folder, ".json")
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	j.written = append(j.written, path)
	return nil
}

// Files lists the paths written so far.
func (j *JSONOutput) Files() []string { return j.written }

func (j *JSONOutput) Close() error { return nil }

// CSVOutput writes one row per menu item.
type CSVOutput struct {
	basePath string
	folder   string
	written  []string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{basePath: basePath, folder: folder}
}

func (c *CSVOutput) WriteResult(_ context.Context, report Report) error {
	path := report.localPath(c.basePath, c.folder, ".csv")
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range report.Result.Items {
		if err := w.Write(newItemRow(item).csvRecord()); err != nil {
			return fmt.Errorf("failed to write item %d: %w", item.ItemID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	c.written = append(c.written, path)
	return file.Close()
}

func (c *CSVOutput) Files() []string { return c.written }

func (c *CSVOutput) Close() error { return nil }
