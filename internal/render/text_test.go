package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apizzacone/subscrybe-easy-life/internal/render"
)

func TestTextRender(t *testing.T) {
	t.Parallel()

	renderer, err := render.New(render.FormatTypeText)
	require.NoError(t, err)
	require.Equal(t, "txt", renderer.Extension())

	t.Run("contains every section in order", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)
		require.Equal(t, "report-subscriptions-2024-08-10.txt", artifact.Filename)

		body := string(artifact.Payload)
		sections := []string{
			"SUBSCRIPTION REPORT",
			"EXECUTIVE SUMMARY",
			"MONTHLY SPEND",
			"SPEND BY CATEGORY",
			"UPCOMING PAYMENTS",
			"INSIGHTS",
		}

		last := -1
		for _, section := range sections {
			idx := strings.Index(body, section)
			require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
			require.Greater(t, idx, last, "section %q out of order", section)
			last = idx
		}
	})

	t.Run("summary figures use two decimals", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), testSnapshot(t), render.Options{})
		require.NoError(t, err)

		body := string(artifact.Payload)
		require.Contains(t, body, "Total spend: R$")
		require.Contains(t, body, "Potential savings: R$")
		require.Contains(t, body, "Active subscriptions: 2")
		require.Contains(t, body, "Skipped records: 0")
		// Table amounts use the plain two-decimal form.
		require.Contains(t, body, "67.80")
		require.Contains(t, body, "167.00")
	})

	t.Run("byte-stable for a fixed snapshot", func(t *testing.T) {
		t.Parallel()

		snapshot := testSnapshot(t)

		first, err := renderer.Render(context.Background(), snapshot, render.Options{})
		require.NoError(t, err)

		second, err := renderer.Render(context.Background(), snapshot, render.Options{})
		require.NoError(t, err)

		require.Equal(t, first.Payload, second.Payload)
	})

	t.Run("empty snapshot renders without error", func(t *testing.T) {
		t.Parallel()

		artifact, err := renderer.Render(context.Background(), emptySnapshot(t), render.Options{})
		require.NoError(t, err)

		body := string(artifact.Payload)
		require.Contains(t, body, "UPCOMING PAYMENTS")
		require.Contains(t, body, "Change vs previous month: n/a")
	})
}
