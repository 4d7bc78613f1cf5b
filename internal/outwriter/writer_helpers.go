package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
)

// writeWithFile opens the output file (stdout when empty), runs the writer and closes it.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes a header then lets writeRows fill in the records.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters returns the float and int formatters for the configured precision.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtInt func(int) string) {
	fmtFloat = func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	return fmtFloat, strconv.Itoa
}

// fmtOptional formats a metric that may be unavailable.
func fmtOptional(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "n/a"
	}
	return fmtFloat(*v)
}
