package backend

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

func (c *Client) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	return get[leave.Page[leave.Record]](ctx, c, "/leave-requests", filterQuery(filter))
}

func (c *Client) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	return get[leave.Page[leave.Record]](ctx, c, "/leave-requests/me", filterQuery(filter))
}

func (c *Client) SearchLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	return get[leave.Page[leave.Record]](ctx, c, "/leave-requests/search", filterQuery(filter))
}

// ListApproved walks the APPROVED pages until the backend reports the last
// one, or maxPages is reached.
func (c *Client) ListApproved(ctx context.Context) ([]leave.Record, error) {
	status := string(leave.StatusApproved)
	filter := leave.LeaveRequestFilter{Status: &status, Size: leave.MaxPageSize}

	var records []leave.Record
	for filter.Page = 0; filter.Page < c.maxPages; filter.Page++ {
		page, err := c.ListLeaveRequests(ctx, filter)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Content...)
		if page.Last || len(page.Content) == 0 {
			return records, nil
		}
	}

	slog.Warn("Approved leave listing truncated",
		"max_pages", c.maxPages,
		"records", len(records))
	return records, nil
}

func (c *Client) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.Record, error) {
	return send[leave.Record](ctx, c, http.MethodPost, "/leave-requests", req)
}

func (c *Client) UpdateLeaveRequestStatus(ctx context.Context, req leave.UpdateLeaveRequestStatusRequest) (leave.Record, error) {
	return send[leave.Record](ctx, c, http.MethodPut, "/leave-requests/"+url.PathEscape(req.ID), req)
}

func (c *Client) MonthlyStatistics(ctx context.Context, year int) ([]leave.MonthlyStatistic, error) {
	return get[[]leave.MonthlyStatistic](ctx, c, "/leave-requests/monthly-statistics/"+strconv.Itoa(year), nil)
}
