package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/fencecalc/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// JobTag holds the data encoded into the QR code printed on a quote, so a
// crew can scan the paper copy back to the saved job.
type JobTag struct {
	JobID         string `json:"job"`
	Name          string `json:"name"`
	Customer      string `json:"customer,omitempty"`
	FenceHeight   string `json:"height"`
	FenceType     string `json:"type"`
	FabricFootage string `json:"footage_ft"`
	Runs          int    `json:"runs"`
	Total         string `json:"total"`
}

const (
	tagQRSize  = 32.0 // QR code size in mm
	tagQRPixel = 256
)

// NewJobTag collects the tag fields for a job and its computed result.
func NewJobTag(job model.FenceJob, result model.EstimationResult, total string) JobTag {
	return JobTag{
		JobID:         job.ID,
		Name:          job.Name,
		Customer:      job.Customer,
		FenceHeight:   job.Input.FenceHeight,
		FenceType:     job.Input.FenceType.String(),
		FabricFootage: fmt.Sprintf("%.1f", result.FabricFootage),
		Runs:          len(job.Input.Runs),
		Total:         total,
	}
}

// EncodeJobTag renders the tag as a QR PNG.
func EncodeJobTag(tag JobTag) ([]byte, error) {
	data, err := json.Marshal(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job tag: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, tagQRPixel)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// renderJobTag places the QR tag with its caption at x, y.
func renderJobTag(pdf *fpdf.Fpdf, x, y float64, tag JobTag) error {
	png, err := EncodeJobTag(tag)
	if err != nil {
		return err
	}

	imgName := "jobtag_" + tag.JobID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, tagQRSize, tagQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagQRSize, tagQRSize, "D")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+tagQRSize+0.5)
	pdf.CellFormat(tagQRSize, 3, "Job "+shortID(tag.JobID), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
