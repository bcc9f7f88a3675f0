package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	SearchRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequestStatus(w http.ResponseWriter, r *http.Request)
	Duration(w http.ResponseWriter, r *http.Request)
	MonthlyStatistics(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

type pageFetcher func(ctx context.Context, sess *session.Session, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error)

func servePage(w http.ResponseWriter, r *http.Request, fetch pageFetcher) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	filter, err := parseLeaveFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := fetch(r.Context(), sess, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, page)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, l.leaveService.ListLeaveRequests)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, l.leaveService.ListMyLeaveRequests)
}

// SearchRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) SearchRequests(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, l.leaveService.SearchLeaveRequests)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// UpdateRequestStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req leave.UpdateLeaveRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequestStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdateLeaveRequestStatus(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request approved successfully"
	if req.Status == leave.StatusRejected {
		message = "Leave request rejected successfully"
	}
	response.SuccessWithMessage(w, message, updated)
}

// Duration implements LeaveHandler.
func (l *LeaveHandlerImpl) Duration(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := leave.DurationRequest{
		StartDate:    query.Get("startDate"),
		EndDate:      query.Get("endDate"),
		DurationType: leave.DurationType(query.Get("durationType")),
	}

	result, err := l.leaveService.Duration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyStatistics implements LeaveHandler.
func (l *LeaveHandlerImpl) MonthlyStatistics(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Year must be a number", nil)
		return
	}

	stats, err := l.leaveService.MonthlyStatistics(r.Context(), sess, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	balances, err := l.leaveService.LeaveBalances(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// ListDepartments implements LeaveHandler.
func (l *LeaveHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	departments, err := l.leaveService.Departments(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}
