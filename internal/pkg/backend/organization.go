package backend

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

func (c *Client) LeaveBalances(ctx context.Context) (leave.Balances, error) {
	return get[leave.Balances](ctx, c, "/leave-balances/me", nil)
}

func (c *Client) Departments(ctx context.Context) ([]leave.Department, error) {
	return get[[]leave.Department](ctx, c, "/departments", nil)
}
