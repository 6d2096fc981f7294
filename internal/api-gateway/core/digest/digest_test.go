package digest

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports/portsmock"
)

func TestBuild_DoesNotReconcile(t *testing.T) {
	records := []entity.ReportRecord{
		{ID: "r1", Product: entity.Product{ID: "p1", Name: "Tea"}, UnitsSold: 3, Revenue: decimal.RequireFromString("45.00")},
		{ID: "r2", Product: entity.Product{ID: "p2", Name: "Cake"}, UnitsSold: 1, Revenue: decimal.RequireFromString("25.00")},
	}
	total := decimal.RequireFromString("100.00")

	d := Build(records, total)

	assert.Equal(t, records, d.Records)
	assert.True(t, d.GrandTotal.Equal(total), "grand total must be passed through untouched")
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil, decimal.Zero)
	assert.Empty(t, d.Records)
	assert.True(t, d.GrandTotal.IsZero())

	// a non-zero total with no rows is displayed as is
	d = Build(nil, decimal.NewFromInt(12))
	assert.True(t, d.GrandTotal.Equal(decimal.NewFromInt(12)))
}

func TestFetch(t *testing.T) {
	svc := new(portsmock.OrderService)
	records := []entity.ReportRecord{{ID: "r1", UnitsSold: 2, Revenue: decimal.NewFromInt(50)}}
	svc.On("ListReportRecords", mock.Anything).Return(records, nil)
	svc.On("GetTotalRevenue", mock.Anything).Return(decimal.NewFromInt(70), nil)

	d, err := Fetch(t.Context(), svc)
	require.NoError(t, err)
	assert.Equal(t, records, d.Records)
	assert.True(t, d.GrandTotal.Equal(decimal.NewFromInt(70)))
	svc.AssertExpectations(t)
}

func TestFetch_Error(t *testing.T) {
	svc := new(portsmock.OrderService)
	boom := errors.New("boom")
	svc.On("ListReportRecords", mock.Anything).Return(nil, nil)
	svc.On("GetTotalRevenue", mock.Anything).Return(decimal.Zero, boom)

	_, err := Fetch(t.Context(), svc)
	assert.ErrorIs(t, err, boom)
}
