package report_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

func TestComputeMonthlyTrend(t *testing.T) {
	t.Parallel()

	t.Run("last month is live, earlier months come from history", func(t *testing.T) {
		t.Parallel()

		trend := report.ComputeMonthlyTrend(demoSubscriptions(), demoHistory(t), domain.Period6Months, referenceNow, "BRL")

		require.Len(t, trend, 6)

		require.Equal(t, "Mar 2024", trend[0].Label)
		require.Equal(t, "Aug 2024", trend[5].Label)

		for _, point := range trend[:5] {
			require.Equal(t, report.SourceHistory, point.Source, "month %s", point.Label)
		}
		require.Equal(t, report.SourceLive, trend[5].Source)

		// live month: active subscriptions only
		require.Equal(t, int64(6780), trend[5].Total.MinorUnit)
		require.Equal(t, 2, trend[5].Subscriptions)

		// seeded month
		require.Equal(t, int64(16700), trend[4].Total.MinorUnit)
		require.Equal(t, 4, trend[4].Subscriptions)
	})

	t.Run("months missing from history are zero but still tagged", func(t *testing.T) {
		t.Parallel()

		trend := report.ComputeMonthlyTrend(nil, nil, domain.Period3Months, referenceNow, "BRL")

		require.Len(t, trend, 3)
		require.Equal(t, report.SourceHistory, trend[0].Source)
		require.Zero(t, trend[0].Total.MinorUnit)
		require.Zero(t, trend[0].Subscriptions)
		require.Equal(t, report.SourceLive, trend[2].Source)
		require.Zero(t, trend[2].Total.MinorUnit)
	})

	t.Run("window length follows the period", func(t *testing.T) {
		t.Parallel()

		require.Len(t, report.ComputeMonthlyTrend(nil, nil, domain.Period3Months, referenceNow, "BRL"), 3)
		require.Len(t, report.ComputeMonthlyTrend(nil, nil, domain.Period6Months, referenceNow, "BRL"), 6)
		require.Len(t, report.ComputeMonthlyTrend(nil, nil, domain.Period12Months, referenceNow, "BRL"), 12)
	})
}

func TestHistory(t *testing.T) {
	t.Parallel()

	t.Run("lookup by calendar month", func(t *testing.T) {
		t.Parallel()

		history := demoHistory(t)

		entry, ok := history.Lookup(referenceNow.AddDate(0, -1, 0))
		require.True(t, ok)
		require.InDelta(t, 167.00, entry.Total, 0.001)

		_, ok = history.Lookup(referenceNow)
		require.False(t, ok)
	})

	t.Run("rejects malformed month keys", func(t *testing.T) {
		t.Parallel()

		_, err := report.NewHistory([]report.HistoryEntry{{Month: "August 2024", Total: 1}})
		require.ErrorContains(t, err, "invalid history month")
	})

	t.Run("amount converts ledger totals to money", func(t *testing.T) {
		t.Parallel()

		history := demoHistory(t)

		amount := history.Amount(referenceNow.AddDate(0, -1, 0), "BRL")
		require.Equal(t, int64(16700), amount.MinorUnit)
		require.Equal(t, "BRL", amount.Currency)

		// absent month
		amount = history.Amount(referenceNow, "BRL")
		require.Zero(t, amount.MinorUnit)
	})

	t.Run("nil history resolves to zero amounts", func(t *testing.T) {
		t.Parallel()

		var history *report.History

		amount := history.Amount(referenceNow, "BRL")
		require.Zero(t, amount.MinorUnit)
		require.Equal(t, "BRL", amount.Currency)
	})
}
