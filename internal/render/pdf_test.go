package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

func TestPageCount(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		height, pageHeight, want int
	}{
		"fits one page":        {height: 100, pageHeight: 140, want: 1},
		"exact multiple":       {height: 280, pageHeight: 140, want: 2},
		"partial final page":   {height: 281, pageHeight: 140, want: 3},
		"single pixel":         {height: 1, pageHeight: 140, want: 1},
		"zero height":          {height: 0, pageHeight: 140, want: 0},
		"zero page height":     {height: 100, pageHeight: 0, want: 0},
		"equal to page height": {height: 140, pageHeight: 140, want: 1},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, pageCount(tc.height, tc.pageHeight))
		})
	}
}

func TestDocumentRenderTilesSurface(t *testing.T) {
	t.Parallel()

	snapshot := &report.Snapshot{
		Period:      domain.Period6Months,
		GeneratedAt: time.Date(2024, time.August, 10, 12, 0, 0, 0, time.UTC),
		Currency:    "BRL",
	}

	tests := map[string]struct {
		surfaceHeight int
		wantPages     int
	}{
		"short surface on one page": {surfaceHeight: 100, wantPages: 1},
		"tall surface tiled":        {surfaceHeight: 400, wantPages: 3},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// Page width 210mm over a 100px surface gives 2.1mm per pixel,
			// so each page slice covers int(295/2.1) = 140 pixels.
			surface := image.NewRGBA(image.Rect(0, 0, 100, tc.surfaceHeight))
			for y := 0; y < tc.surfaceHeight; y++ {
				for x := 0; x < 100; x++ {
					surface.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
				}
			}

			renderer := &documentRenderer{}
			artifact, err := renderer.Render(context.Background(), snapshot, Options{Surface: surface})
			require.NoError(t, err)

			require.Equal(t, "report-subscriptions-2024-08-10.pdf", artifact.Filename)
			require.True(t, bytes.HasPrefix(artifact.Payload, []byte("%PDF")))
			require.Contains(t, string(artifact.Payload), fmt.Sprintf("/Count %d", tc.wantPages))
		})
	}
}

func TestDocumentRenderEmptySurface(t *testing.T) {
	t.Parallel()

	snapshot := &report.Snapshot{
		Period:      domain.Period6Months,
		GeneratedAt: time.Date(2024, time.August, 10, 12, 0, 0, 0, time.UTC),
	}

	renderer := &documentRenderer{}
	_, err := renderer.Render(context.Background(), snapshot, Options{Surface: image.NewRGBA(image.Rect(0, 0, 0, 0))})

	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	require.Equal(t, FormatTypeDocument, exportErr.Format)
	require.ErrorContains(t, err, "surface is empty")
}

func TestDocumentRenderDrawsLayout(t *testing.T) {
	t.Parallel()

	history, err := report.NewHistory([]report.HistoryEntry{
		{Month: "2024-07", Total: 167.00, Subscriptions: 3},
	})
	require.NoError(t, err)

	snapshot, err := report.Build(context.Background(), []domain.Subscription{
		{
			ID:          "sub-1",
			Name:        "Netflix",
			Price:       domain.MoneyFromMajorUnit(45.90, "BRL"),
			NextPayment: time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC),
			Category:    "Streaming",
			Status:      domain.StatusActive,
		},
	}, history, report.Options{
		Period: domain.Period6Months,
		Now:    time.Date(2024, time.August, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	renderer := &documentRenderer{}
	artifact, err := renderer.Render(context.Background(), snapshot, Options{})
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(artifact.Payload, []byte("%PDF")))
	require.NotEmpty(t, artifact.Payload)
	require.Equal(t, FormatTypeDocument, artifact.Format)
}
