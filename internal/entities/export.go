package entities

import (
	"fmt"
	"time"
)

const (
	ExportCSV  = "csv"
	ExportPDF  = "pdf"
	ExportXLSX = "xlsx"
)

type ExportRequest struct {
	Format        string    `json:"format"`
	DataType      string    `json:"data_type"`
	IncludeCharts bool      `json:"include_charts"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

func (r ExportRequest) Validate() error {
	switch r.Format {
	case ExportCSV, ExportPDF, ExportXLSX:
	default:
		return fmt.Errorf("unsupported export format %q", r.Format)
	}
	if r.DataType == "" {
		return fmt.Errorf("data_type is required")
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	return nil
}

// Report is a binary analytics export ready to be sent as a download.
type Report struct {
	ContentType string
	Filename    string
	Data        []byte
}
