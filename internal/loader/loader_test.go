package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "contacts.csv", "\ufeffid,email,company_id\n1,a@x.com,10\n2,,\n3,c@y.org\n")

	ds, info, err := NewFileLoader().Load(context.Background(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, "contacts.csv", ds.Name)
	assert.Equal(t, []string{"id", "email", "company_id"}, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "a@x.com", ds.Rows[0]["email"])
	assert.Nil(t, ds.Rows[1]["email"], "empty cell is null")
	assert.Nil(t, ds.Rows[2]["company_id"], "short row is padded with nulls")
	assert.Equal(t, schema.SourceInfo{Path: path, Rows: 3, OriginalRows: 3}, info)
}

func TestLoadCSVMaxRows(t *testing.T) {
	path := writeFile(t, "tickets.csv", "id,status\n1,open\n2,closed\n3,open\n")

	ds, info, err := NewFileLoader().Load(context.Background(), path, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.True(t, info.Limited)
	assert.Equal(t, 3, info.OriginalRows)
	assert.Equal(t, 2, info.Rows)
}

func TestLoadCSVHeaderNames(t *testing.T) {
	path := writeFile(t, "dups.csv", "name,,name\na,b,c\n")

	ds, _, err := NewFileLoader().Load(context.Background(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "column_2", "name.1"}, ds.Columns)
	assert.Equal(t, "c", ds.Rows[0]["name.1"])
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "id,email\n")

	ds, info, err := NewFileLoader().Load(context.Background(), path, 0)
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, 2, ds.Width())
	assert.Equal(t, 0, info.Rows)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"id", "name", "industry"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"10", "Acme", "Software"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"11", "Globex"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, info, err := NewFileLoader().Load(context.Background(), path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "industry"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Acme", ds.Rows[0]["name"])
	assert.Equal(t, "Software", ds.Rows[0]["industry"])
	assert.Nil(t, ds.Rows[1]["industry"])
	assert.Equal(t, 2, info.Rows)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "data.json", "{}")
		_, _, err := NewFileLoader().Load(context.Background(), path, 0)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := NewFileLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), 0)
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		path := writeFile(t, "contacts.csv", "id\n1\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := NewFileLoader().Load(ctx, path, 0)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoadExports(t *testing.T) {
	contacts := schema.NewDataset("contacts.csv", []string{"id"}, []schema.Row{{"id": "1"}})
	tickets := schema.NewDataset("tickets.csv", []string{"id"}, []schema.Row{{"id": "9"}})

	m := &MockDatasetLoader{}
	m.On("Load", mock.Anything, "contacts.csv", 5).Return(contacts, schema.SourceInfo{Path: "contacts.csv", Rows: 1}, nil)
	m.On("Load", mock.Anything, "tickets.csv", 5).Return(tickets, schema.SourceInfo{Path: "tickets.csv", Rows: 1}, nil)

	out, err := LoadExports(context.Background(), m, map[schema.DatasetKind]string{
		schema.ContactsKind: "contacts.csv",
		schema.TicketsKind:  "tickets.csv",
	}, 5)
	require.NoError(t, err)

	assert.Len(t, out, 2)
	assert.Same(t, contacts, out[schema.ContactsKind].Dataset)
	assert.Same(t, tickets, out[schema.TicketsKind].Dataset)
	assert.Equal(t, "tickets.csv", out[schema.TicketsKind].Source.Path)
	m.AssertExpectations(t)
}

func TestLoadExportsError(t *testing.T) {
	boom := errors.New("boom")
	m := &MockDatasetLoader{}
	m.On("Load", mock.Anything, "companies.csv", 0).Return(nil, schema.SourceInfo{}, boom)

	_, err := LoadExports(context.Background(), m, map[schema.DatasetKind]string{
		schema.CompaniesKind: "companies.csv",
	}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load companies")
}
