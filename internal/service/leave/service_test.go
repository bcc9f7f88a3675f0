package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	calls     map[string]int
	page      leave.Page[leave.Record]
	created   leave.Record
	updated   leave.Record
	balances  leave.Balances
	depts     []leave.Department
	stats     []leave.MonthlyStatistic
	err       error
	lastQuery leave.LeaveRequestFilter
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: make(map[string]int)}
}

func (f *fakeGateway) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeGateway) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeGateway) ListLeaveRequests(_ context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	f.hit("list")
	f.lastQuery = filter
	return f.page, f.err
}

func (f *fakeGateway) ListMyLeaveRequests(_ context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	f.hit("me")
	return f.page, f.err
}

func (f *fakeGateway) SearchLeaveRequests(_ context.Context, filter leave.LeaveRequestFilter) (leave.Page[leave.Record], error) {
	f.hit("search")
	f.lastQuery = filter
	return f.page, f.err
}

func (f *fakeGateway) ListApproved(context.Context) ([]leave.Record, error) {
	f.hit("approved")
	return f.page.Content, f.err
}

func (f *fakeGateway) CreateLeaveRequest(_ context.Context, req leave.CreateLeaveRequestRequest) (leave.Record, error) {
	f.hit("create")
	return f.created, f.err
}

func (f *fakeGateway) UpdateLeaveRequestStatus(_ context.Context, req leave.UpdateLeaveRequestStatusRequest) (leave.Record, error) {
	f.hit("update")
	return f.updated, f.err
}

func (f *fakeGateway) MonthlyStatistics(context.Context, int) ([]leave.MonthlyStatistic, error) {
	f.hit("stats")
	return f.stats, f.err
}

func (f *fakeGateway) LeaveBalances(context.Context) (leave.Balances, error) {
	f.hit("balances")
	return f.balances, f.err
}

func (f *fakeGateway) Departments(context.Context) ([]leave.Department, error) {
	f.hit("departments")
	return f.depts, f.err
}

type fixture struct {
	gw   *fakeGateway
	svc  leave.LeaveService
	hub  *sse.Hub
	sess *session.Session
}

func setup(t *testing.T) fixture {
	t.Helper()
	gw := newFakeGateway()
	hub := sse.NewHub()
	sess, err := session.New("opaque-token")
	require.NoError(t, err)

	svc := NewLeaveService(func(*session.Session) leave.Gateway { return gw }, cache.New(time.Minute), hub)
	return fixture{gw: gw, svc: svc, hub: hub, sess: sess}
}

func TestListLeaveRequests_Cached(t *testing.T) {
	f := setup(t)
	f.gw.page = leave.Page[leave.Record]{Content: []leave.Record{{ID: "1"}}, Last: true}
	ctx := context.Background()

	for range 3 {
		page, err := f.svc.ListLeaveRequests(ctx, f.sess, leave.LeaveRequestFilter{})
		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
	}
	assert.Equal(t, 1, f.gw.count("list"))

	_, err := f.svc.ListLeaveRequests(ctx, f.sess, leave.LeaveRequestFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, f.gw.count("list"))

	_, err = f.svc.ListMyLeaveRequests(ctx, f.sess, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.gw.count("me"), "views must not share cache entries")
}

func TestListLeaveRequests_InvalidFilter(t *testing.T) {
	f := setup(t)
	bad := "CANCELLED"

	_, err := f.svc.ListLeaveRequests(context.Background(), f.sess, leave.LeaveRequestFilter{Status: &bad, Size: 500})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "status")
	assert.Contains(t, verrs.ToMap(), "size")
	assert.Zero(t, f.gw.count("list"))
}

func TestSearchLeaveRequests_RequiresName(t *testing.T) {
	f := setup(t)
	_, err := f.svc.SearchLeaveRequests(context.Background(), f.sess, leave.LeaveRequestFilter{})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	name := "Alice"
	_, err = f.svc.SearchLeaveRequests(context.Background(), f.sess, leave.LeaveRequestFilter{EmployeeName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *f.gw.lastQuery.EmployeeName)
}

func TestCreateLeaveRequest(t *testing.T) {
	f := setup(t)
	f.gw.created = leave.Record{
		ID:        "new",
		Status:    leave.StatusPending,
		StartDate: leave.MustParseDate("2024-06-10"),
		EndDate:   leave.MustParseDate("2024-06-14"),
	}
	ctx := context.Background()

	events, cleanup := f.hub.Subscribe(sse.TopicCalendar)
	defer cleanup()

	_, err := f.svc.ListLeaveRequests(ctx, f.sess, leave.LeaveRequestFilter{})
	require.NoError(t, err)

	resp, err := f.svc.CreateLeaveRequest(ctx, f.sess, leave.CreateLeaveRequestRequest{
		Type:      leave.TypeAnnual,
		StartDate: "2024-06-10",
		EndDate:   "2024-06-14",
		Reason:    "vacation",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.ID)
	assert.Equal(t, 5.0, resp.Days)

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventLeaveChanged, ev.Event)
		payload, ok := ev.Data.(leave.ChangeEvent)
		require.True(t, ok)
		assert.Equal(t, leave.ChangeCreated, payload.Action)
		assert.Equal(t, "new", payload.RecordID)
	default:
		t.Fatal("expected a leave.changed event")
	}

	_, err = f.svc.ListLeaveRequests(ctx, f.sess, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.gw.count("list"), "create must invalidate cached lists")
}

func TestCreateLeaveRequest_Validation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateLeaveRequest(context.Background(), f.sess, leave.CreateLeaveRequestRequest{
		Type:         leave.TypeSick,
		StartDate:    "2024-06-14",
		EndDate:      "2024-06-10",
		DurationType: leave.DurationHalfDay,
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	m := verrs.ToMap()
	assert.Contains(t, m, "endDate")
	assert.Contains(t, m, "reason")
	assert.Contains(t, m, "durationType")
	assert.Zero(t, f.gw.count("create"))
}

func TestCreateLeaveRequest_HalfDay(t *testing.T) {
	f := setup(t)
	resp, err := f.svc.CreateLeaveRequest(context.Background(), f.sess, leave.CreateLeaveRequestRequest{
		Type:         leave.TypeSick,
		StartDate:    "2024-06-12",
		EndDate:      "2024-06-12",
		Reason:       "appointment",
		DurationType: leave.DurationHalfDay,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, resp.Days)
}

func TestUpdateLeaveRequestStatus(t *testing.T) {
	f := setup(t)
	f.gw.updated = leave.Record{ID: "lr-1", Status: leave.StatusRejected}
	ctx := context.Background()

	_, err := f.svc.UpdateLeaveRequestStatus(ctx, f.sess, leave.UpdateLeaveRequestStatusRequest{
		ID: "lr-1", Status: leave.StatusRejected,
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "rejectionReason")

	_, err = f.svc.LeaveBalances(ctx, f.sess)
	require.NoError(t, err)

	rec, err := f.svc.UpdateLeaveRequestStatus(ctx, f.sess, leave.UpdateLeaveRequestStatusRequest{
		ID: "lr-1", Status: leave.StatusRejected, RejectionReason: "coverage",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rec.Status)

	_, err = f.svc.LeaveBalances(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, 2, f.gw.count("balances"), "review must invalidate balances")
}

func TestGatewayErrorsPropagate(t *testing.T) {
	f := setup(t)
	f.gw.err = leave.ErrBackendUnavailable

	_, err := f.svc.Departments(context.Background(), f.sess)
	assert.ErrorIs(t, err, leave.ErrBackendUnavailable)

	f.gw.err = nil
	f.gw.depts = []leave.Department{{ID: "eng", Name: "Engineering"}}
	depts, err := f.svc.Departments(context.Background(), f.sess)
	require.NoError(t, err)
	assert.Len(t, depts, 1)
}

func TestDuration(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Duration(context.Background(), leave.DurationRequest{StartDate: "2024-01-01", EndDate: "2024-01-05"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Days)

	_, err = f.svc.Duration(context.Background(), leave.DurationRequest{StartDate: "2024-01-05", EndDate: "2024-01-01"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestMonthlyStatistics(t *testing.T) {
	f := setup(t)
	f.gw.stats = []leave.MonthlyStatistic{{Year: 2024, Month: 6}}

	_, err := f.svc.MonthlyStatistics(context.Background(), f.sess, 12)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	stats, err := f.svc.MonthlyStatistics(context.Background(), f.sess, 2024)
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

func TestLogout(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.LeaveBalances(ctx, f.sess)
	require.NoError(t, err)

	f.svc.Logout(ctx, f.sess)
	assert.False(t, f.sess.Valid())

	_, err = f.svc.LeaveBalances(ctx, f.sess)
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
	assert.Equal(t, 1, f.gw.count("balances"))

	assert.NotPanics(t, func() { f.svc.Logout(ctx, nil) })
}

func TestNilSession(t *testing.T) {
	f := setup(t)
	_, err := f.svc.ListMyLeaveRequests(context.Background(), nil, leave.LeaveRequestFilter{})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}
