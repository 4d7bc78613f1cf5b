// Package schema has the data model, diagnostic records and enums shared by all parts of jupiter.
package schema

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Row is one record of a dataset, keyed by column name.
// A missing key or a nil value is a null cell.
type Row map[string]any

// Dataset is an ordered sequence of rows sharing one column set.
// Column names are case-preserved; semantic lookups lowercase them.
type Dataset struct {
	Name    string   // Optional label such as the source file name
	Columns []string // Column names in declaration order
	Rows    []Row
}

// NewDataset builds a dataset from a header and rows.
func NewDataset(name string, columns []string, rows []Row) *Dataset {
	return &Dataset{Name: name, Columns: columns, Rows: rows}
}

// Len returns the number of rows. A nil dataset has zero rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// IsEmpty reports whether the dataset is nil or holds no rows or no columns.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0 || d.Width() == 0
}

// HasColumn reports whether the exact column name exists.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	return slices.Contains(d.Columns, name)
}

// Clone returns a deep copy of the dataset header and rows.
// Cell values are copied by assignment; they are immutable scalars.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	clone := &Dataset{
		Name:    d.Name,
		Columns: slices.Clone(d.Columns),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		clone.Rows[i] = maps.Clone(r)
	}
	return clone
}

// IsNull reports whether a cell is missing. NaN floats count as missing.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case time.Time:
		return x.IsZero()
	}
	return false
}

// IsEmptyString reports whether a cell holds the empty string.
// This is distinct from a null cell.
func IsEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

// AsKey returns a canonical string form of a cell for joins and equality checks.
// Numbers drop trailing zeros so 10, 10.0 and "10" compare equal. Integer
// text keeps full precision, so large ids stay distinct.
// The boolean is false for null cells.
func AsKey(v any) (string, bool) {
	if IsNull(v) {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return textKey(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}

// maxExactFloat is the largest magnitude below which every integer is exact in a float64.
const maxExactFloat = 1 << 53

// textKey canonicalizes numeric text. Integers go through int64; other
// decimals go through float64 unless that would lose integer digits.
func textKey(x string) string {
	s := strings.TrimSpace(x)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if !looksNumeric(s) {
		return x
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.Abs(f) >= maxExactFloat {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// looksNumeric rejects strings that ParseFloat accepts but are not plain decimals,
// such as "NaN", "Inf" or hex floats.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}

// AsFloat converts a numeric cell or numeric text to float64.
// The boolean is false for null or non-numeric cells.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if !looksNumeric(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Round1 rounds to one decimal place, the precision used by every percentage metric.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Pct returns part/total as a percentage rounded to one decimal, or 0 when total is 0.
func Pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(part) / float64(total) * 100)
}
