// Package contract provides interfaces and shared utilities for jupiter's internal architecture.
package contract

import (
	"context"

	"github.com/StephanieJJ/jupiter-audit/schema"
)

// DatasetLoader reads one CRM export into memory.
// This allows the audit pipeline to be tested without files on disk.
type DatasetLoader interface {
	// Load reads the file at path. A positive maxRows truncates the dataset
	// and records the original row count in the returned SourceInfo.
	Load(ctx context.Context, path string, maxRows int) (*schema.Dataset, schema.SourceInfo, error)
}
