package api

import (
	"context"
	"fmt"
	"io"
)

// Report identifies one downloadable PDF report.
type Report string

const (
	ReportInventory Report = "inventory"
	ReportProducts  Report = "products"
	ReportFreshness Report = "freshness"
)

// DownloadReport streams a report into w. The freshness report needs a unit
// id; the others ignore it.
func (c *Client) DownloadReport(ctx context.Context, report Report, unitID int64, w io.Writer) (int64, error) {
	path := "/api/reports/" + string(report)
	if report == ReportFreshness {
		path = fmt.Sprintf("/api/reports/freshness/%d", unitID)
	}

	req, err := c.newRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, errorFromBody(resp.StatusCode, body)
	}

	return io.Copy(w, resp.Body)
}
