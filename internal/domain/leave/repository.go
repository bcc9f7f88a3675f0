package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
)

// Gateway is the external leave backend, bound to one session. The backend
// owns persistence, balances and the approval workflow.
type Gateway interface {
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (Page[Record], error)
	ListMyLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (Page[Record], error)
	SearchLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (Page[Record], error)
	// ListApproved walks every page of APPROVED requests.
	ListApproved(ctx context.Context) ([]Record, error)
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (Record, error)
	UpdateLeaveRequestStatus(ctx context.Context, req UpdateLeaveRequestStatusRequest) (Record, error)
	MonthlyStatistics(ctx context.Context, year int) ([]MonthlyStatistic, error)
	LeaveBalances(ctx context.Context) (Balances, error)
	Departments(ctx context.Context) ([]Department, error)
}

// GatewayFactory builds a Gateway for a session.
type GatewayFactory func(sess *session.Session) Gateway
