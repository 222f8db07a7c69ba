// Package export writes material takeoffs and their costing to quote
// documents: a PDF quote with a QR job tag and an Excel bill of quantities.
package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/fencecalc/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	runRowHeight = 5.0
	footerHeight = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
	contentEnd   = pageHeight - marginBottom - footerHeight
)

// ExportPDF generates a quote for a job: the job header, the input summary,
// the run list, the material table with quantities and prices, the total
// and a QR job tag. Long run lists continue on further pages.
func ExportPDF(path string, job model.FenceJob, result model.EstimationResult, pricing model.PricingConfig, currency string) error {
	q, err := buildQuote(job, result, pricing, currency)
	if err != nil {
		return err
	}
	return q.pdf.OutputFileAndClose(path)
}

// quote is a rendered document plus where its total row ended, which the
// layout tests check against the page.
type quote struct {
	pdf         *fpdf.Fpdf
	totalPage   int
	totalBottom float64
}

func buildQuote(job model.FenceJob, result model.EstimationResult, pricing model.PricingConfig, currency string) (*quote, error) {
	items := model.LineItems(result, pricing)
	total := FormatMoney(currency, model.ComputeCost(result, pricing))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetFooterFunc(func() { renderFooter(pdf) })
	pdf.AddPage()

	y := renderQuoteHeader(pdf, job)
	if err := renderJobTag(pdf, pageWidth-marginRight-tagQRSize, marginTop, NewJobTag(job, result, total)); err != nil {
		return nil, fmt.Errorf("failed to render job tag: %w", err)
	}
	y = renderInputSummary(pdf, job, result, y)
	y = renderRunTable(pdf, job.Input.Runs, y)
	y = renderMaterialTable(pdf, items, currency, total, y)

	return &quote{pdf: pdf, totalPage: pdf.PageNo(), totalBottom: y}, nil
}

// ensureSpace starts a new page when need millimetres do not fit below y
// and returns the y to continue at.
func ensureSpace(pdf *fpdf.Fpdf, y, need float64) float64 {
	if y+need <= contentEnd {
		return y
	}
	pdf.AddPage()
	return marginTop
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by FenceCalc - Chain-Link Fence Estimator - Page %d", pdf.PageNo())
	pdf.CellFormat(contentWidth, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderQuoteHeader draws the title block and returns the next free y.
func renderQuoteHeader(pdf *fpdf.Fpdf, job model.FenceJob) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-tagQRSize-5, headerHeight, "Fence Material Quote", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight
	lines := []string{
		"Job: " + job.Name,
		"Customer: " + job.Customer,
		"Date: " + time.Now().Format("2006-01-02"),
	}
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(contentWidth-tagQRSize-5, 5, line, "", 0, "L", false, 0, "")
		y += 5
	}

	y = max(y, marginTop+tagQRSize+5) + 2
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	return y + 5
}

func renderInputSummary(pdf *fpdf.Fpdf, job model.FenceJob, result model.EstimationResult, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Fence", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Fence Height", job.Input.FenceHeight + " ft"},
		{"Fence Type", job.Input.FenceType.String()},
		{"Pipe Weight", result.PipeWeight},
		{"Fabric", fmt.Sprintf("%s, %.1f ft", result.FabricType, result.FabricFootage)},
		{"End Posts", fmt.Sprintf("%d", job.Input.Ends)},
		{"Corner Posts", fmt.Sprintf("%d", job.Input.Corners)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}
	return y + 4
}

// renderRunTable lists the measured runs two per row, continuing on a new
// page when the list reaches the bottom margin.
func renderRunTable(pdf *fpdf.Fpdf, runs []model.FenceRun, y float64) float64 {
	y = ensureSpace(pdf, y, 8+runRowHeight)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Runs", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	if len(runs) == 0 {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(contentWidth-5, runRowHeight, "No measured runs (hardware only)", "", 0, "L", false, 0, "")
		return y + runRowHeight + 6
	}

	colW := contentWidth / 2
	for i := 0; i < len(runs); i += 2 {
		if next := ensureSpace(pdf, y, runRowHeight); next != y {
			y = next
			pdf.SetFont("Helvetica", "", 9)
		}
		for col := 0; col < 2 && i+col < len(runs); col++ {
			run := runs[i+col]
			pdf.SetXY(marginLeft+5+float64(col)*colW, y)
			pdf.CellFormat(colW-5, runRowHeight, fmt.Sprintf("%s: %.1f ft", run.Label, run.Length), "", 0, "L", false, 0, "")
		}
		y += runRowHeight
	}
	return y + 6
}

// renderMaterialTable draws the priced lines and the total and returns the
// bottom of the total row. The column header repeats after a page break.
func renderMaterialTable(pdf *fpdf.Fpdf, items []model.LineItem, currency, total string, y float64) float64 {
	colWidths := []float64{80, 20, 20, 30, 30}
	headers := []string{"Material", "Qty", "Unit", "Unit Price", "Extended"}
	aligns := []string{"L", "R", "C", "R", "R"}

	drawHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		pdf.SetFont("Helvetica", "", 9)
		return y + rowHeight
	}

	// Keep the title, the header and at least one row together.
	y = ensureSpace(pdf, y, 9+2*rowHeight)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Materials", "", 0, "L", false, 0, "")
	y = drawHeader(y + 9)

	for i, item := range items {
		if next := ensureSpace(pdf, y, rowHeight); next != y {
			y = drawHeader(next)
		}
		rowData := []string{
			item.Label,
			formatQuantity(item),
			item.Unit,
			FormatMoney(currency, item.UnitPrice),
			FormatMoney(currency, item.Extended),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, aligns[j], true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}

	y = ensureSpace(pdf, y, rowHeight+1)
	labelW := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3]
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(labelW, rowHeight+1, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4], rowHeight+1, total, "1", 0, "R", false, 0, "")
	return y + rowHeight + 1
}

// formatQuantity prints counted materials as integers and footage with one
// decimal.
func formatQuantity(item model.LineItem) string {
	if item.Kind == model.MaterialFabric {
		return fmt.Sprintf("%.1f", item.Quantity)
	}
	return fmt.Sprintf("%.0f", item.Quantity)
}
