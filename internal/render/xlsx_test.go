package render_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/apizzacone/subscrybe-easy-life/internal/render"
)

func TestSpreadsheetRender(t *testing.T) {
	t.Parallel()

	renderer, err := render.New(render.FormatTypeSpreadsheet)
	require.NoError(t, err)
	require.Equal(t, "xlsx", renderer.Extension())

	t.Run("workbook has the three sheets in order", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)
		require.Equal(t, "report-subscriptions-2024-08-10.xlsx", artifact.Filename)

		f := openWorkbook(t, artifact.Payload)
		require.Equal(t, []string{
			render.SheetMonthlySpend,
			render.SheetByCategory,
			render.SheetUpcomingPayments,
		}, f.GetSheetList())
	})

	t.Run("monthly spend rows", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)

		f := openWorkbook(t, artifact.Payload)
		rows, err := f.GetRows(render.SheetMonthlySpend)
		require.NoError(t, err)

		require.Equal(t, []string{"Month", "Amount", "Subscriptions", "Source"}, rows[0])
		require.Len(t, rows, 7) // header plus six months

		// Current month is computed from live data; earlier months come
		// from the history ledger.
		require.Equal(t, "Aug 2024", rows[6][0])
		require.Equal(t, "live", rows[6][3])
		require.Equal(t, "Jul 2024", rows[5][0])
		require.Equal(t, "history", rows[5][3])
	})

	t.Run("category rows carry amount and percentage", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)

		f := openWorkbook(t, artifact.Payload)
		rows, err := f.GetRows(render.SheetByCategory)
		require.NoError(t, err)

		require.Equal(t, []string{"Category", "Amount", "Percentage"}, rows[0])
		require.Len(t, rows, 3) // active categories only, trial excluded
		require.Equal(t, "Streaming", rows[1][0])
		require.Equal(t, "Música", rows[2][0])
	})

	t.Run("upcoming payment rows", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)

		f := openWorkbook(t, artifact.Payload)
		rows, err := f.GetRows(render.SheetUpcomingPayments)
		require.NoError(t, err)

		require.Equal(t, []string{"Service", "Amount", "Date", "Days Remaining"}, rows[0])
		require.Len(t, rows, 3)
		require.Equal(t, "Netflix", rows[1][0])
		require.Equal(t, "2024-08-15", rows[1][2])
		require.Equal(t, "5", rows[1][3])
		require.Equal(t, "Spotify", rows[2][0])
	})

	t.Run("byte-stable for a fixed snapshot", func(t *testing.T) {
		t.Parallel()

		snapshot := testSnapshot(t)

		first, err := renderer.Render(context.Background(), snapshot, render.Options{})
		require.NoError(t, err)

		second, err := renderer.Render(context.Background(), snapshot, render.Options{})
		require.NoError(t, err)

		// Document timestamps are pinned to snapshot.GeneratedAt, so two
		// renders of the same snapshot must not differ in a single byte.
		require.Equal(t, first.Payload, second.Payload)
	})

	t.Run("empty snapshot still writes headers", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), emptySnapshot(t), render.Options{})
		require.NoError(t, err)

		f := openWorkbook(t, artifact.Payload)
		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			require.NoError(t, err)
			require.NotEmpty(t, rows, "sheet %s has no header", sheet)
		}
	})
}

func openWorkbook(t *testing.T, payload []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	return f
}
