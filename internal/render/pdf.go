package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

const (
	FormatTypeDocument FormatType = "document"

	// Page geometry in logical units (mm), A4-equivalent.
	pageWidth  = 210.0
	pageHeight = 295.0
)

func init() {
	Register(FormatTypeDocument, func() Renderer {
		return &documentRenderer{}
	})
}

var _ Renderer = (*documentRenderer)(nil)

// documentRenderer emits a paginated PDF. When the caller supplies a raster
// surface of the report view it is tiled full-bleed across ceil(H/P) pages
// with hard cuts; otherwise the renderer draws its own layout from the
// snapshot.
type documentRenderer struct{}

func (r *documentRenderer) Type() FormatType {
	return FormatTypeDocument
}

func (r *documentRenderer) Extension() string {
	return "pdf"
}

func (r *documentRenderer) Render(_ context.Context, snapshot *report.Snapshot, opts Options) (*Artifact, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetTitle("Subscription Report", true)
	pdf.SetCreationDate(snapshot.GeneratedAt)

	var err error
	if opts.Surface != nil {
		err = r.tileSurface(pdf, opts.Surface)
	} else {
		err = r.drawSnapshot(pdf, snapshot)
	}

	if err != nil {
		return nil, failure(FormatTypeDocument, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, failure(FormatTypeDocument, fmt.Errorf("serializing document: %w", err))
	}

	return &Artifact{
		Format:      FormatTypeDocument,
		Filename:    Filename(snapshot.GeneratedAt, r.Extension()),
		Payload:     buf.Bytes(),
		GeneratedAt: snapshot.GeneratedAt,
	}, nil
}

// pageCount is the tiling contract: a surface of height h cut into pages of
// height p yields ceil(h/p) pages, with a single page when h <= p.
func pageCount(h, p int) int {
	if h <= 0 || p <= 0 {
		return 0
	}

	return (h + p - 1) / p
}

// tileSurface scales the surface to the page width and cuts it vertically
// into full-bleed page slices. Each page boundary is a hard cut of the
// rasterized image, not a reflow.
func (r *documentRenderer) tileSurface(pdf *gofpdf.Fpdf, surface image.Image) error {
	bounds := surface.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return errors.New("rasterization surface is empty")
	}

	scale := pageWidth / float64(width)
	sliceHeight := int(pageHeight / scale) // pixels per page
	if sliceHeight <= 0 {
		sliceHeight = 1
	}

	pages := pageCount(height, sliceHeight)
	for i := 0; i < pages; i++ {
		top := bounds.Min.Y + i*sliceHeight
		bottom := top + sliceHeight
		if limit := bounds.Min.Y + height; bottom > limit {
			bottom = limit
		}

		slice := image.NewRGBA(image.Rect(0, 0, width, bottom-top))
		draw.Draw(slice, slice.Bounds(), surface, image.Pt(bounds.Min.X, top), draw.Src)

		var encoded bytes.Buffer
		if err := png.Encode(&encoded, slice); err != nil {
			return fmt.Errorf("encoding page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("surface-page-%d", i+1)
		imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, imgOpts, &encoded)
		if pdf.Err() {
			return fmt.Errorf("registering page %d: %w", i+1, pdf.Error())
		}

		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, pageWidth, float64(bottom-top)*scale, false, imgOpts, 0, "")
	}

	if pdf.Err() {
		return pdf.Error()
	}

	return nil
}

// drawSnapshot renders a native layout of the report when no raster surface
// is available.
func (r *documentRenderer) drawSnapshot(pdf *gofpdf.Fpdf, snapshot *report.Snapshot) error {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Subscription Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", snapshot.GeneratedAt.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: last %d months", snapshot.Period.Months()))
	pdf.Ln(8)

	change := "n/a"
	if snapshot.PercentChange != nil {
		change = fmt.Sprintf("%+.2f%%", *snapshot.PercentChange)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Total spend: %s", snapshot.CurrentTotal.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Change vs previous month: %s", change))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly average: %s", snapshot.MonthlyAverage.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Potential savings: %s", snapshot.PotentialSavings.String()))
	pdf.Ln(8)

	r.drawTable(pdf, tr, "Monthly Spend",
		[]string{"Month", "Amount", "Subscriptions", "Source"},
		[]float64{45, 45, 45, 45},
		monthlyRows(snapshot))

	r.drawTable(pdf, tr, "By Category",
		[]string{"Category", "Amount", "Percentage"},
		[]float64{60, 60, 60},
		categoryRows(snapshot))

	r.drawTable(pdf, tr, "Upcoming Payments",
		[]string{"Service", "Amount", "Date", "Days"},
		[]float64{60, 45, 45, 30},
		upcomingRows(snapshot))

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, "Insights")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	for _, insight := range snapshot.Insights {
		pdf.Cell(0, 5, tr(fmt.Sprintf("[%s] %s: %s (%s)", insight.Kind, insight.Title, insight.Description, insight.Value)))
		pdf.Ln(5)
	}

	if pdf.Err() {
		return pdf.Error()
	}

	return nil
}

func (r *documentRenderer) drawTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 6, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func monthlyRows(snapshot *report.Snapshot) [][]string {
	rows := make([][]string, 0, len(snapshot.MonthlyTrend))
	for _, point := range snapshot.MonthlyTrend {
		rows = append(rows, []string{
			point.Label,
			point.Total.String(),
			fmt.Sprintf("%d", point.Subscriptions),
			string(point.Source),
		})
	}

	return rows
}

func categoryRows(snapshot *report.Snapshot) [][]string {
	rows := make([][]string, 0, len(snapshot.CategoryBreakdown))
	for _, category := range snapshot.CategoryBreakdown {
		rows = append(rows, []string{
			category.Category,
			category.Total.String(),
			fmt.Sprintf("%.2f%%", category.Percentage),
		})
	}

	return rows
}

func upcomingRows(snapshot *report.Snapshot) [][]string {
	rows := make([][]string, 0, len(snapshot.UpcomingPayments))
	for _, payment := range snapshot.UpcomingPayments {
		rows = append(rows, []string{
			payment.ServiceName,
			payment.Amount.String(),
			payment.DueDate.Format("2006-01-02"),
			fmt.Sprintf("%d", payment.DaysUntilDue),
		})
	}

	return rows
}
