package subscrybe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/apizzacone/subscrybe-easy-life/internal/domain"
	"github.com/apizzacone/subscrybe-easy-life/internal/render"
	"github.com/apizzacone/subscrybe-easy-life/internal/report"
	"github.com/apizzacone/subscrybe-easy-life/internal/source"
	"github.com/apizzacone/subscrybe-easy-life/internal/util/sliceutil"
)

const timeFormat = "2006-01-02"

type reportOptions struct {
	File        string
	HistoryFile string
	PeriodStr   string
	NowStr      string
	OutDir      string
	Formats     []string
	Limit       int
}

var reportCmd = newReportCommand()

func newReportCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a spend report and export it",
		Long:  `Builds one report snapshot from a subscription snapshot file and exports it in the requested formats. Each format is exported independently; one failing does not stop the others.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), opts)
		},
	}

	defaultFormats := make([]string, 0)
	for _, format := range render.All() {
		defaultFormats = append(defaultFormats, string(format))
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "Path to the subscription snapshot file (JSON)")
	cmd.Flags().StringVar(&opts.HistoryFile, "history", "", "Path to the monthly history ledger (YAML)")
	cmd.Flags().StringVar(&opts.PeriodStr, "period", "6months", "Trailing window (options: 3months, 6months, 12months)")
	cmd.Flags().StringVar(&opts.NowStr, "now", "", "Reference date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "Directory to write exported files to")
	cmd.Flags().StringSliceVar(&opts.Formats, "format", defaultFormats, fmt.Sprintf("Export formats (options: %s)", sliceutil.ToDelimitedString(render.All())))
	cmd.Flags().IntVar(&opts.Limit, "limit", report.DefaultUpcomingLimit, "Number of upcoming payments to include")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runReport(ctx context.Context, opts *reportOptions) error {
	snapshot, err := buildSnapshot(ctx, opts)
	if err != nil {
		return err
	}

	var failures []error
	for _, name := range opts.Formats {
		artifact, err := renderFormat(ctx, render.FormatType(name), snapshot)
		if err != nil {
			zerolog.Ctx(ctx).Error().
				Str("format", name).
				Err(err).
				Msg("export failed")
			failures = append(failures, err)

			continue
		}

		path := filepath.Join(opts.OutDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Payload, 0644); err != nil {
			err = fmt.Errorf("writing %s: %w", path, err)
			zerolog.Ctx(ctx).Error().
				Str("format", name).
				Err(err).
				Msg("export failed")
			failures = append(failures, err)

			continue
		}

		zerolog.Ctx(ctx).Info().
			Str("format", name).
			Str("path", path).
			Int("bytes", len(artifact.Payload)).
			Msg("exported report")
	}

	return errors.Join(failures...)
}

func buildSnapshot(ctx context.Context, opts *reportOptions) (*report.Snapshot, error) {
	period, err := domain.ParsePeriod(opts.PeriodStr)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if opts.NowStr != "" {
		now, err = time.Parse(timeFormat, opts.NowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid reference date: %w", err)
		}
	}

	subs, err := source.LoadSnapshot(ctx, opts.File)
	if err != nil {
		return nil, err
	}

	var history *report.History
	if opts.HistoryFile != "" {
		history, err = report.LoadHistory(opts.HistoryFile)
		if err != nil {
			return nil, err
		}
	}

	return report.Build(ctx, subs, history, report.Options{
		Period:        period,
		Now:           now,
		UpcomingLimit: opts.Limit,
	})
}

func renderFormat(ctx context.Context, format render.FormatType, snapshot *report.Snapshot) (*render.Artifact, error) {
	renderer, err := render.New(format)
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, snapshot, render.Options{})
}
