package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

const (
	FormatTypeText FormatType = "text"

	textTimeFormat = "2006-01-02"
)

func init() {
	Register(FormatTypeText, func() Renderer {
		return &textRenderer{}
	})
}

var _ Renderer = (*textRenderer)(nil)

// textRenderer emits the report as a single UTF-8 blob with labeled sections
// in fixed order. Output is byte-stable for a given snapshot apart from the
// generation date embedded in the header and filename.
type textRenderer struct{}

func (r *textRenderer) Type() FormatType {
	return FormatTypeText
}

func (r *textRenderer) Extension() string {
	return "txt"
}

func (r *textRenderer) Render(_ context.Context, snapshot *report.Snapshot, _ Options) (*Artifact, error) {
	var buf bytes.Buffer

	r.writeHeader(&buf, snapshot)
	r.writeSummary(&buf, snapshot)
	r.writeMonthlySpend(&buf, snapshot)
	r.writeCategorySpend(&buf, snapshot)
	r.writeUpcomingPayments(&buf, snapshot)
	r.writeInsights(&buf, snapshot)

	return &Artifact{
		Format:      FormatTypeText,
		Filename:    Filename(snapshot.GeneratedAt, r.Extension()),
		Payload:     buf.Bytes(),
		GeneratedAt: snapshot.GeneratedAt,
	}, nil
}

func (r *textRenderer) writeHeader(buf *bytes.Buffer, snapshot *report.Snapshot) {
	fmt.Fprintf(buf, "SUBSCRIPTION REPORT\n")
	fmt.Fprintf(buf, "Generated: %s\n", snapshot.GeneratedAt.Format(textTimeFormat))
	fmt.Fprintf(buf, "Period: last %d months\n\n", snapshot.Period.Months())
}

func (r *textRenderer) writeSummary(buf *bytes.Buffer, snapshot *report.Snapshot) {
	change := "n/a"
	if snapshot.PercentChange != nil {
		change = fmt.Sprintf("%+.2f%%", *snapshot.PercentChange)
	}

	fmt.Fprintf(buf, "EXECUTIVE SUMMARY\n")
	fmt.Fprintf(buf, "Total spend: %s\n", snapshot.CurrentTotal.Display())
	fmt.Fprintf(buf, "Change vs previous month: %s\n", change)
	fmt.Fprintf(buf, "Monthly average: %s\n", snapshot.MonthlyAverage.Display())
	fmt.Fprintf(buf, "Potential savings: %s\n", snapshot.PotentialSavings.Display())
	fmt.Fprintf(buf, "Active subscriptions: %d\n", snapshot.ActiveCount)
	fmt.Fprintf(buf, "Skipped records: %d\n\n", snapshot.SkippedRecords)
}

func (r *textRenderer) writeMonthlySpend(buf *bytes.Buffer, snapshot *report.Snapshot) {
	fmt.Fprintf(buf, "MONTHLY SPEND\n")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Month", fmt.Sprintf("Amount (%s)", snapshot.Currency), "Subscriptions", "Source"})
	for _, point := range snapshot.MonthlyTrend {
		t.AppendRow(table.Row{point.Label, point.Total.String(), point.Subscriptions, string(point.Source)})
	}
	t.SetStyle(table.StyleRounded)

	fmt.Fprintf(buf, "%s\n\n", t.Render())
}

func (r *textRenderer) writeCategorySpend(buf *bytes.Buffer, snapshot *report.Snapshot) {
	fmt.Fprintf(buf, "SPEND BY CATEGORY\n")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Category", fmt.Sprintf("Amount (%s)", snapshot.Currency), "Percentage"})
	for _, category := range snapshot.CategoryBreakdown {
		t.AppendRow(table.Row{category.Category, category.Total.String(), fmt.Sprintf("%.2f%%", category.Percentage)})
	}
	t.SetStyle(table.StyleRounded)

	fmt.Fprintf(buf, "%s\n\n", t.Render())
}

func (r *textRenderer) writeUpcomingPayments(buf *bytes.Buffer, snapshot *report.Snapshot) {
	fmt.Fprintf(buf, "UPCOMING PAYMENTS\n")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Service", "Amount", "Due Date", "Days", "Urgency"})
	for _, payment := range snapshot.UpcomingPayments {
		t.AppendRow(table.Row{
			payment.ServiceName,
			payment.Amount.Display(),
			payment.DueDate.Format(textTimeFormat),
			payment.DaysUntilDue,
			string(payment.Urgency),
		})
	}
	t.SetStyle(table.StyleRounded)

	fmt.Fprintf(buf, "%s\n\n", t.Render())
}

func (r *textRenderer) writeInsights(buf *bytes.Buffer, snapshot *report.Snapshot) {
	fmt.Fprintf(buf, "INSIGHTS\n")
	for _, insight := range snapshot.Insights {
		fmt.Fprintf(buf, "[%s] %s: %s (%s)\n", insight.Kind, insight.Title, insight.Description, insight.Value)
	}
}
