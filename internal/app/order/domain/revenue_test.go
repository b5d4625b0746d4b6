package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

func TestSummarizeRevenue_WorkedScenario(t *testing.T) {
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	orders := []RevenueInput{
		{Status: StatusPaid, Total: money.MustParse("20"), CreatedAt: monthStart.AddDate(0, 0, 14)},
		{Status: StatusPending, Total: money.MustParse("15"), CreatedAt: monthStart.AddDate(0, 0, 10)},
		{Status: StatusCancelled, Total: money.MustParse("100"), CreatedAt: monthStart.AddDate(0, 0, 5)},
	}

	summary, err := SummarizeRevenue(orders, monthStart)

	require.NoError(t, err)
	assert.Equal(t, "20.00", summary.TotalRevenue.String())
	assert.Equal(t, int64(1), summary.TotalSales)
	assert.Equal(t, "20.00", summary.MonthlyRevenue.String())
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, "20.00", summary.AverageOrderValue.String())
}

func TestSummarizeRevenue_MonthlyWindow(t *testing.T) {
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	orders := []RevenueInput{
		{Status: StatusPaid, Total: money.MustParse("10"), CreatedAt: monthStart.AddDate(0, -1, 0)},
		{Status: StatusShipped, Total: money.MustParse("30"), CreatedAt: monthStart},
		{Status: StatusCompleted, Total: money.MustParse("5"), CreatedAt: monthStart.AddDate(0, 0, 20)},
	}

	summary, err := SummarizeRevenue(orders, monthStart)

	require.NoError(t, err)
	assert.Equal(t, "45.00", summary.TotalRevenue.String())
	assert.Equal(t, int64(3), summary.TotalSales)
	// the order at exactly monthStart counts, the prior month does not
	assert.Equal(t, "35.00", summary.MonthlyRevenue.String())
	assert.Equal(t, "15.00", summary.AverageOrderValue.String())
}

func TestSummarizeRevenue_Empty(t *testing.T) {
	summary, err := SummarizeRevenue(nil, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.Zero(t, summary.TotalSales)
	assert.True(t, summary.MonthlyRevenue.IsZero())
	assert.Zero(t, summary.PendingOrders)
	assert.True(t, summary.AverageOrderValue.IsZero())
}

func TestSummarizeRevenue_OnlyPendingAndCancelled(t *testing.T) {
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	orders := []RevenueInput{
		{Status: StatusPending, Total: money.MustParse("15"), CreatedAt: monthStart},
		{Status: StatusPending, Total: money.MustParse("25"), CreatedAt: monthStart},
		{Status: StatusCancelled, Total: money.MustParse("40"), CreatedAt: monthStart},
	}

	summary, err := SummarizeRevenue(orders, monthStart)

	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.Equal(t, int64(2), summary.PendingOrders)
	assert.True(t, summary.AverageOrderValue.IsZero())
}
