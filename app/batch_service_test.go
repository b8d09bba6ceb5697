package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
	"godist/internal/testkit"
)

func TestDescribeColumns_KeepsInputOrder(t *testing.T) {
	var columns []stats.Column
	for _, f := range testkit.Fixtures() {
		columns = append(columns, stats.Column{Name: f.Name, Values: f.Values})
	}

	results, err := NewBatchService(newService(nil), 3).DescribeColumns(context.Background(), columns)
	require.NoError(t, err)
	require.Len(t, results, len(columns))

	for i, res := range results {
		assert.Equal(t, columns[i].Name, res.Column)
		require.NoError(t, res.Err)
		assert.Equal(t, columns[i].Name, res.Report.Name)
		assert.Equal(t, len(columns[i].Values), res.Report.Summary.N)
	}
}

func TestDescribeColumns_ValidationErrorsStayPerColumn(t *testing.T) {
	columns := []stats.Column{
		{Name: "ok", Values: []float64{1, 2}},
		{Name: "nan", Values: []float64{math.NaN()}},
		{Name: "empty"},
	}

	results, err := NewBatchService(newService(nil), 0).DescribeColumns(context.Background(), columns)
	require.NoError(t, err)

	assert.NotNil(t, results[0].Report)
	assert.True(t, stderrors.Is(results[1].Err, core.ErrNonFinite))
	assert.True(t, stderrors.Is(results[2].Err, core.ErrEmptySample))
	assert.Nil(t, results[2].Report)
}

func TestDescribeColumns_InfrastructureErrorFailsBatch(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("FindByHash", mock.Anything, mock.Anything).
		Return(nil, errors.DatabaseError("query failed", fmt.Errorf("timeout")))

	columns := []stats.Column{{Name: "a", Values: []float64{1}}, {Name: "b", Values: []float64{2}}}
	results, err := NewBatchService(newService(repo), 2).DescribeColumns(context.Background(), columns)

	assert.Nil(t, results)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}

func TestDescribeColumns_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatchService(newService(nil), 2).DescribeColumns(ctx, []stats.Column{{Name: "a", Values: []float64{1}}})
	assert.ErrorIs(t, err, context.Canceled)
}
