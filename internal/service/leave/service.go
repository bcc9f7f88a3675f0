package leave

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	gateways leave.GatewayFactory
	cache    *cache.Cache
	hub      *sse.Hub
}

// NewLeaveService wires the service. hub may be nil when nobody listens for
// change events.
func NewLeaveService(gateways leave.GatewayFactory, c *cache.Cache, hub *sse.Hub) leave.LeaveService {
	return &LeaveServiceImpl{
		gateways: gateways,
		cache:    c,
		hub:      hub,
	}
}

// gateway returns the session's gateway, refusing sessions that were
// invalidated so cached data is never served to them.
func (s *LeaveServiceImpl) gateway(sess *session.Session) (leave.Gateway, error) {
	if sess == nil || !sess.Valid() {
		return nil, leave.ErrUnauthorized
	}
	return s.gateways(sess), nil
}

func (s *LeaveServiceImpl) listPage(
	ctx context.Context,
	sess *session.Session,
	view string,
	filter leave.LeaveRequestFilter,
	fetch func(leave.Gateway, context.Context, leave.LeaveRequestFilter) (leave.Page[leave.Record], error),
) (leave.Page[leave.Record], error) {
	if err := filter.Validate(); err != nil {
		return leave.Page[leave.Record]{}, err
	}
	gw, err := s.gateway(sess)
	if err != nil {
		return leave.Page[leave.Record]{}, err
	}

	params := filter.Params()
	params["view"] = view
	return cache.GetOrLoad(ctx, s.cache, leave.ResourceLeaveRequests, params, sess.Fingerprint(),
		func(ctx context.Context) (leave.Page[leave.Record], error) {
			return fetch(gw, ctx, filter)
		})
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, sess *session.Session, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	return s.listPage(ctx, sess, "all", filter, leave.Gateway.ListLeaveRequests)
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, sess *session.Session, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	return s.listPage(ctx, sess, "me", filter, leave.Gateway.ListMyLeaveRequests)
}

// SearchLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) SearchLeaveRequests(ctx context.Context, sess *session.Session, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	if filter.EmployeeName == nil || validator.IsEmpty(*filter.EmployeeName) {
		return leave.Page[leave.Record]{}, validator.ValidationErrors{{
			Field:   "employeeName",
			Message: "employeeName is required",
		}}
	}
	return s.listPage(ctx, sess, "search", filter, leave.Gateway.SearchLeaveRequests)
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, sess *session.Session, req leave.CreateLeaveRequestRequest) (leave.CreateLeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}
	start, end := req.Range()
	days, err := calendar.CalculateDuration(start, end, req.DurationType)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}

	gw, err := s.gateway(sess)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}
	record, err := gw.CreateLeaveRequest(ctx, req)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}

	slog.Info("Leave request created",
		"id", record.ID,
		"subject", sess.Subject(),
		"type", string(req.Type),
		"days", days)
	s.changed(sess, record, leave.ChangeCreated)

	return leave.CreateLeaveRequestResponse{Record: record, Days: days}, nil
}

// UpdateLeaveRequestStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeaveRequestStatus(ctx context.Context, sess *session.Session, req leave.UpdateLeaveRequestStatusRequest) (leave.Record, error) {
	if err := req.Validate(); err != nil {
		return leave.Record{}, err
	}
	gw, err := s.gateway(sess)
	if err != nil {
		return leave.Record{}, err
	}

	record, err := gw.UpdateLeaveRequestStatus(ctx, req)
	if err != nil {
		return leave.Record{}, err
	}

	action := leave.ChangeApproved
	if req.Status == leave.StatusRejected {
		action = leave.ChangeRejected
	}
	slog.Info("Leave request reviewed",
		"id", req.ID,
		"status", string(req.Status),
		"reviewer", sess.Subject())
	s.changed(sess, record, action)

	return record, nil
}

// changed drops every cached view derived from leave requests and notifies
// listeners so they recompute their calendars.
func (s *LeaveServiceImpl) changed(sess *session.Session, record leave.Record, action leave.ChangeAction) {
	s.cache.Invalidate(leave.MutatedResources()...)
	if s.hub == nil {
		return
	}

	topics := []string{sse.TopicCalendar}
	if sub := sess.Subject(); sub != "" {
		topics = append(topics, sse.UserTopic(sub))
	}
	s.hub.PublishToMany(topics, sse.Event{
		Event: sse.EventLeaveChanged,
		Data: leave.ChangeEvent{
			RecordID:  record.ID,
			Action:    action,
			Status:    record.Status,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
		},
	})
}

// Duration implements leave.LeaveService.
func (s *LeaveServiceImpl) Duration(ctx context.Context, req leave.DurationRequest) (leave.DurationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.DurationResponse{}, err
	}
	start, _ := leave.ParseDate(req.StartDate)
	end, _ := leave.ParseDate(req.EndDate)

	days, err := calendar.CalculateDuration(start, end, req.DurationType)
	if err != nil {
		return leave.DurationResponse{}, err
	}
	return leave.DurationResponse{
		StartDate:    start,
		EndDate:      end,
		DurationType: req.DurationType,
		Days:         days,
	}, nil
}

// MonthlyStatistics implements leave.LeaveService.
func (s *LeaveServiceImpl) MonthlyStatistics(ctx context.Context, sess *session.Session, year int) ([]leave.MonthlyStatistic, error) {
	if err := leave.ValidateYear(year); err != nil {
		return nil, err
	}
	gw, err := s.gateway(sess)
	if err != nil {
		return nil, err
	}
	params := map[string]string{"year": validator.Itoa(year)}
	return cache.GetOrLoad(ctx, s.cache, leave.ResourceStatistics, params, sess.Fingerprint(),
		func(ctx context.Context) ([]leave.MonthlyStatistic, error) {
			return gw.MonthlyStatistics(ctx, year)
		})
}

// LeaveBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) LeaveBalances(ctx context.Context, sess *session.Session) (leave.Balances, error) {
	gw, err := s.gateway(sess)
	if err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.cache, leave.ResourceBalances, nil, sess.Fingerprint(), gw.LeaveBalances)
}

// Departments implements leave.LeaveService.
func (s *LeaveServiceImpl) Departments(ctx context.Context, sess *session.Session) ([]leave.Department, error) {
	gw, err := s.gateway(sess)
	if err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.cache, leave.ResourceDepartments, nil, sess.Fingerprint(), gw.Departments)
}

// Logout implements leave.LeaveService.
func (s *LeaveServiceImpl) Logout(ctx context.Context, sess *session.Session) {
	if sess == nil {
		return
	}
	sess.Invalidate()
	s.cache.InvalidateScope(sess.Fingerprint())
	slog.Info("Session logged out", "subject", sess.Subject())
}
