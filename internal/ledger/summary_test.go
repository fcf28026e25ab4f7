package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myasset-dev/myasset/internal/model"
)

func TestSummary(t *testing.T) {
	s, _ := newTestService(t)
	seed(t, s,
		model.Transaction{Date: "2025-03-02", Store: "7-ELEVEN", Item: "一般消費", Amount: 55},
		model.Transaction{Date: "2025-03-03", Store: "全聯", Item: "一般消費", Amount: 300},
		model.Transaction{Date: "2025-03-04", Store: "麥當勞", Item: "一般消費", Amount: 145},
		model.Transaction{Date: "2025-03-05", Store: "無名小店", Item: "一般消費", Amount: 90},
		model.Transaction{Date: "2025-04-01", Store: "中油", Item: "一般消費", Amount: 1200},
	)

	got, err := s.Summary(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, int64(590), got.Total)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 1, got.Unclassified)
	assert.Equal(t, []CategoryTotal{
		{Category: model.CategoryDailyGoods, Total: 300, Count: 1},
		{Category: model.CategoryFood, Total: 200, Count: 2},
		{Category: model.CategoryOther, Total: 90, Count: 1},
	}, got.ByCategory)
	assert.Equal(t, []MonthTotal{{Month: "2025-03", Total: 590}}, got.ByMonth)

	all, err := s.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1790), all.Total)
	assert.Equal(t, []MonthTotal{{Month: "2025-03", Total: 590}, {Month: "2025-04", Total: 1200}}, all.ByMonth)
}

func TestSummary_Empty(t *testing.T) {
	s, _ := newTestService(t)
	got, err := s.Summary(context.Background(), "2025-01")
	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Empty(t, got.ByCategory)
}
