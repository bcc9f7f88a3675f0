package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
)

type CreateLeaveRequestResponse struct {
	Record
	Days float64 `json:"days"`
}

type LeaveService interface {
	ListLeaveRequests(ctx context.Context, sess *session.Session, filter LeaveRequestFilter) (Page[Record], error)
	ListMyLeaveRequests(ctx context.Context, sess *session.Session, filter LeaveRequestFilter) (Page[Record], error)
	SearchLeaveRequests(ctx context.Context, sess *session.Session, filter LeaveRequestFilter) (Page[Record], error)
	CreateLeaveRequest(ctx context.Context, sess *session.Session, req CreateLeaveRequestRequest) (CreateLeaveRequestResponse, error)
	UpdateLeaveRequestStatus(ctx context.Context, sess *session.Session, req UpdateLeaveRequestStatusRequest) (Record, error)
	Duration(ctx context.Context, req DurationRequest) (DurationResponse, error)
	MonthlyStatistics(ctx context.Context, sess *session.Session, year int) ([]MonthlyStatistic, error)
	LeaveBalances(ctx context.Context, sess *session.Session) (Balances, error)
	Departments(ctx context.Context, sess *session.Session) ([]Department, error)
	Logout(ctx context.Context, sess *session.Session)
}

// Cache resources. A mutation of any leave request drops all of
// MutatedResources for every session.
const (
	ResourceLeaveRequests = "leave-requests"
	ResourceApproved      = "approved-leave"
	ResourceStatistics    = "statistics"
	ResourceBalances      = "balances"
	ResourceDepartments   = "departments"
)

func MutatedResources() []string {
	return []string{ResourceLeaveRequests, ResourceApproved, ResourceStatistics, ResourceBalances}
}

type ChangeAction string

const (
	ChangeCreated  ChangeAction = "created"
	ChangeApproved ChangeAction = "approved"
	ChangeRejected ChangeAction = "rejected"
)

// ChangeEvent is the payload of the leave.changed event.
type ChangeEvent struct {
	RecordID  string       `json:"recordId"`
	Action    ChangeAction `json:"action"`
	Status    Status       `json:"status"`
	StartDate Date         `json:"startDate"`
	EndDate   Date         `json:"endDate"`
}
