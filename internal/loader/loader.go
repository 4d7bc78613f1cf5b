// Package loader reads CRM exports from CSV and XLSX files into datasets.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileLoader reads exports from the local filesystem.
type FileLoader struct {
	// Sheet is the XLSX sheet to read. Empty means the first sheet.
	Sheet string
}

var _ contract.DatasetLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a loader that reads the first sheet of XLSX files.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads one export. Empty cells become null. The header row is required.
func (l *FileLoader) Load(ctx context.Context, path string, maxRows int) (*schema.Dataset, schema.SourceInfo, error) {
	info := schema.SourceInfo{Path: path}
	if err := ctx.Err(); err != nil {
		return nil, info, err
	}

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		records, err = l.readXLSX(path)
	default:
		return nil, info, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, info, err
	}

	ds := toDataset(filepath.Base(path), records)
	info.OriginalRows = ds.Len()
	if maxRows > 0 && ds.Len() > maxRows {
		ds.Rows = ds.Rows[:maxRows]
		info.Limited = true
	}
	info.Rows = ds.Len()
	return ds, info, nil
}

// readCSV reads every record of a CSV file. Ragged rows are allowed.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// readXLSX reads every row of the configured sheet.
func (l *FileLoader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("excel file %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// toDataset turns raw records into a dataset. The first record is the header.
// Blank header cells get positional names and repeated names get a ".N"
// suffix so every column stays addressable.
func toDataset(name string, records [][]string) *schema.Dataset {
	if len(records) == 0 {
		return schema.NewDataset(name, nil, nil)
	}
	header := make([]string, len(records[0]))
	seen := make(map[string]int, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h]++
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}
		header[i] = h
	}

	rows := make([]schema.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(schema.Row, len(header))
		for i, col := range header {
			if i < len(rec) && rec[i] != "" {
				row[col] = rec[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	return schema.NewDataset(name, header, rows)
}

// Export is one loaded dataset with its provenance.
type Export struct {
	Dataset *schema.Dataset
	Source  schema.SourceInfo
}

// LoadExports reads the configured exports concurrently.
// The first failure cancels the remaining reads.
func LoadExports(ctx context.Context, l contract.DatasetLoader, paths map[schema.DatasetKind]string, maxRows int) (map[schema.DatasetKind]Export, error) {
	results := make([]Export, len(schema.AllDatasetKinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range schema.AllDatasetKinds {
		path, ok := paths[kind]
		if !ok {
			continue
		}
		g.Go(func() error {
			ds, info, err := l.Load(ctx, path, maxRows)
			if err != nil {
				return fmt.Errorf("failed to load %s from %s: %w", kind, path, err)
			}
			results[i] = Export{Dataset: ds, Source: info}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[schema.DatasetKind]Export, len(paths))
	for i, kind := range schema.AllDatasetKinds {
		if results[i].Dataset != nil {
			out[kind] = results[i]
		}
	}
	return out, nil
}
