package demo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchdash/internal/models"
)

func TestPeriodKey(t *testing.T) {
	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-01", periodKey(at, "daily"))
	assert.Equal(t, "2026-01", periodKey(at, "month"))
	// 1 Jan 2026 falls in the first ISO week of 2026
	assert.Equal(t, "2026-W01", periodKey(at, "weekly"))
	assert.Equal(t, "2025-W52", periodKey(time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), "week"))
}

func TestForecastMovingAverage(t *testing.T) {
	history := []models.PeriodRevenue{
		{Period: "2026-05-01", Revenue: decimal.NewFromInt(100)},
		{Period: "2026-05-02", Revenue: decimal.NewFromInt(300)},
	}
	fc := forecast(history, 2)
	require.Len(t, fc.Forecast, 2)
	assert.Equal(t, "2026-05-03", fc.Forecast[0].Period)
	assert.Equal(t, "2026-05-04", fc.Forecast[1].Period)
	assert.True(t, fc.Forecast[0].PredictedRevenue.Equal(decimal.NewFromInt(200)))
	assert.True(t, fc.Forecast[0].LowerBound.Equal(decimal.NewFromInt(100)))
	assert.True(t, fc.Forecast[0].UpperBound.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 0.75, fc.Confidence)

	assert.Empty(t, forecast(nil, 3).Forecast)
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 50.0, growthRate(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	assert.Equal(t, -25.0, growthRate(decimal.NewFromInt(75), decimal.NewFromInt(100)))
	assert.Equal(t, 0.0, growthRate(decimal.NewFromInt(75), decimal.Zero))
}

func TestMerchantRanking(t *testing.T) {
	mk := func(id string, amount int64, status models.Status) txn {
		var t txn
		t.MerchantID = id
		t.Amount = decimal.NewFromInt(amount)
		t.Status = status
		return t
	}
	txns := []txn{
		mk("A", 100, models.StatusCompleted),
		mk("B", 50, models.StatusCompleted),
		mk("B", 50, models.StatusCompleted),
		mk("B", 10, models.StatusFailed),
		mk("C", 400, models.StatusFailed),
	}

	byRevenue := merchantRanking(txns, "revenue")
	require.Len(t, byRevenue, 3)
	assert.Equal(t, "A", byRevenue[0].MerchantID)
	assert.Equal(t, 1, byRevenue[0].Rank)
	assert.Equal(t, 50.0, byRevenue[0].PercentageOfTotal)
	assert.Equal(t, "C", byRevenue[2].MerchantID)

	byCount := merchantRanking(txns, "transactions")
	assert.Equal(t, "B", byCount[0].MerchantID)

	bySuccess := merchantRanking(txns, "successRate")
	assert.Equal(t, "A", bySuccess[0].MerchantID)
	assert.Equal(t, "C", bySuccess[2].MerchantID)
}

func TestDrillDownMatchesCaseInsensitively(t *testing.T) {
	day := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var a, b txn
	a.at, a.CardType, a.Amount, a.Status = day, "VISA", decimal.NewFromInt(10), models.StatusCompleted
	b.at, b.CardType, b.Amount, b.Status = day.Add(24*time.Hour), "AMEX", decimal.NewFromInt(20), models.StatusCompleted

	key, ok := categoryKey("cardtype")
	require.True(t, ok)
	chart := drillDown([]txn{a, b}, key, "visa")
	assert.Equal(t, []string{"2026-05-01"}, chart.Labels)
	assert.Equal(t, []float64{10}, chart.Datasets[0].Data)
	assert.Equal(t, []float64{1}, chart.Datasets[1].Data)

	_, ok = categoryKey("weather")
	assert.False(t, ok)
}
