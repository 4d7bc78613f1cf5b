package loader

import (
	"context"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatasetLoader is a mock implementation of DatasetLoader for testing.
type MockDatasetLoader struct {
	mock.Mock
}

var _ contract.DatasetLoader = &MockDatasetLoader{} // Compile-time check

// Load implements the DatasetLoader interface.
func (m *MockDatasetLoader) Load(ctx context.Context, path string, maxRows int) (*schema.Dataset, schema.SourceInfo, error) {
	args := m.Called(ctx, path, maxRows)
	ds, _ := args.Get(0).(*schema.Dataset)
	info, _ := args.Get(1).(schema.SourceInfo)
	return ds, info, args.Error(2)
}
