package render

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

const (
	FormatTypeSpreadsheet FormatType = "spreadsheet"

	SheetMonthlySpend     = "Monthly Spend"
	SheetByCategory       = "By Category"
	SheetUpcomingPayments = "Upcoming Payments"
)

func init() {
	Register(FormatTypeSpreadsheet, func() Renderer {
		return &spreadsheetRenderer{}
	})
}

var _ Renderer = (*spreadsheetRenderer)(nil)

// spreadsheetRenderer emits a workbook with three sheets in fixed order, one
// row per snapshot entry. Header rows are always present, even for empty data.
type spreadsheetRenderer struct{}

func (r *spreadsheetRenderer) Type() FormatType {
	return FormatTypeSpreadsheet
}

func (r *spreadsheetRenderer) Extension() string {
	return "xlsx"
}

func (r *spreadsheetRenderer) Render(_ context.Context, snapshot *report.Snapshot, _ Options) (*Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := r.buildWorkbook(f, snapshot); err != nil {
		return nil, failure(FormatTypeSpreadsheet, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, failure(FormatTypeSpreadsheet, fmt.Errorf("serializing workbook: %w", err))
	}

	return &Artifact{
		Format:      FormatTypeSpreadsheet,
		Filename:    Filename(snapshot.GeneratedAt, r.Extension()),
		Payload:     buf.Bytes(),
		GeneratedAt: snapshot.GeneratedAt,
	}, nil
}

func (r *spreadsheetRenderer) buildWorkbook(f *excelize.File, snapshot *report.Snapshot) error {
	if err := f.SetSheetName("Sheet1", SheetMonthlySpend); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}

	for _, sheet := range []string{SheetByCategory, SheetUpcomingPayments} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
	}

	// Pin document timestamps to the snapshot so re-rendering the same
	// snapshot yields an identical workbook.
	generated := snapshot.GeneratedAt.UTC().Format(time.RFC3339)
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:  "subscrybe",
		Created:  generated,
		Modified: generated,
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := r.writeMonthlySpend(f, snapshot); err != nil {
		return err
	}

	if err := r.writeByCategory(f, snapshot); err != nil {
		return err
	}

	return r.writeUpcomingPayments(f, snapshot)
}

func (r *spreadsheetRenderer) writeMonthlySpend(f *excelize.File, snapshot *report.Snapshot) error {
	if err := f.SetSheetRow(SheetMonthlySpend, "A1", &[]any{"Month", "Amount", "Subscriptions", "Source"}); err != nil {
		return fmt.Errorf("writing %s header: %w", SheetMonthlySpend, err)
	}

	for i, point := range snapshot.MonthlyTrend {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{point.Label, point.Total.ToMajorUnit(), point.Subscriptions, string(point.Source)}
		if err := f.SetSheetRow(SheetMonthlySpend, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", SheetMonthlySpend, i+2, err)
		}
	}

	return nil
}

func (r *spreadsheetRenderer) writeByCategory(f *excelize.File, snapshot *report.Snapshot) error {
	if err := f.SetSheetRow(SheetByCategory, "A1", &[]any{"Category", "Amount", "Percentage"}); err != nil {
		return fmt.Errorf("writing %s header: %w", SheetByCategory, err)
	}

	for i, category := range snapshot.CategoryBreakdown {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{category.Category, category.Total.ToMajorUnit(), roundTwoDecimals(category.Percentage)}
		if err := f.SetSheetRow(SheetByCategory, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", SheetByCategory, i+2, err)
		}
	}

	return nil
}

func (r *spreadsheetRenderer) writeUpcomingPayments(f *excelize.File, snapshot *report.Snapshot) error {
	if err := f.SetSheetRow(SheetUpcomingPayments, "A1", &[]any{"Service", "Amount", "Date", "Days Remaining"}); err != nil {
		return fmt.Errorf("writing %s header: %w", SheetUpcomingPayments, err)
	}

	for i, payment := range snapshot.UpcomingPayments {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{
			payment.ServiceName,
			payment.Amount.ToMajorUnit(),
			payment.DueDate.Format("2006-01-02"),
			payment.DaysUntilDue,
		}
		if err := f.SetSheetRow(SheetUpcomingPayments, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", SheetUpcomingPayments, i+2, err)
		}
	}

	return nil
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
