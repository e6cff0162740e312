package client

import (
	"context"
	"facilitybooking/internal/entities"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

// maxReportSize bounds an export download.
const maxReportSize = 64 << 20

var reportContentTypes = map[string]string{
	entities.ExportCSV:  "text/csv",
	entities.ExportPDF:  "application/pdf",
	entities.ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportAnalytics asks the backend to render a report and returns its bytes unchanged.
func (c *BookingAPI) ExportAnalytics(ctx context.Context, r entities.ExportRequest) (*entities.Report, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("export analytics: %w", err)
	}
	q := url.Values{}
	q.Set("format", r.Format)
	q.Set("dataType", r.DataType)
	q.Set("includeCharts", strconv.FormatBool(r.IncludeCharts))
	if !r.StartDate.IsZero() {
		q.Set("startDate", formatTime(r.StartDate))
	}
	if !r.EndDate.IsZero() {
		q.Set("endDate", formatTime(r.EndDate))
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/analytics/export", q, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read analytics export: %w", err)
	}
	if len(data) > maxReportSize {
		return nil, fmt.Errorf("analytics export exceeds %d bytes", maxReportSize)
	}

	report := &entities.Report{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    fmt.Sprintf("analytics-%s.%s", r.DataType, r.Format),
		Data:        data,
	}
	if report.ContentType == "" {
		report.ContentType = reportContentTypes[r.Format]
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			report.Filename = params["filename"]
		}
	}
	return report, nil
}
