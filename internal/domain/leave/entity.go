package leave

// Type is an open tag. The backend adds new leave types over time, so values
// outside the known constants must be carried through, not rejected.
type Type string

const (
	TypeAnnual      Type = "ANNUAL"
	TypeSick        Type = "SICK"
	TypeMaternity   Type = "MATERNITY"
	TypePaternity   Type = "PATERNITY"
	TypeUnpaid      Type = "UNPAID"
	TypeBereavement Type = "BEREAVEMENT"
)

var knownTypes = map[Type]string{
	TypeAnnual:      "Annual Leave/PTO",
	TypeSick:        "Sick Leave",
	TypeMaternity:   "Maternity Leave",
	TypePaternity:   "Paternity Leave",
	TypeUnpaid:      "Unpaid Leave",
	TypeBereavement: "Bereavement Leave",
}

// KnownTypes lists the leave types this build recognizes, in display order.
func KnownTypes() []Type {
	return []Type{TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeUnpaid, TypeBereavement}
}

func (t Type) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Label is the human-readable name, falling back to the raw tag.
func (t Type) Label() string {
	if label, ok := knownTypes[t]; ok {
		return label
	}
	if t == "" {
		return "Leave"
	}
	return string(t)
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type DurationType string

const (
	DurationFullDay DurationType = "FULL_DAY"
	DurationHalfDay DurationType = "HALF_DAY"
)

func (d DurationType) Valid() bool {
	return d == "" || d == DurationFullDay || d == DurationHalfDay
}

// Approver as returned by the backend on reviewed requests.
type Approver struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Record is one leave request as produced by the backend. It is consumed
// read-only.
type Record struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employeeName,omitempty"`
	Type         Type         `json:"type"`
	StartDate    Date         `json:"startDate"`
	EndDate      Date         `json:"endDate"`
	Status       Status       `json:"status"`
	DurationType DurationType `json:"durationType,omitempty"`
	DepartmentID string       `json:"departmentId,omitempty"`

	Reason                 string    `json:"reason,omitempty"`
	RejectionReason        *string   `json:"rejectionReason,omitempty"`
	Approver               *Approver `json:"approver,omitempty"`
	SupervisorName         string    `json:"supervisorName,omitempty"`
	SupervisorComment      string    `json:"supervisorComment,omitempty"`
	ApproverName           string    `json:"approverName,omitempty"`
	ApproverComment        string    `json:"approverComment,omitempty"`
	SupportingDocumentURL  string    `json:"supportingDocumentUrl,omitempty"`
	SupportingDocumentName string    `json:"supportingDocumentName,omitempty"`

	// Timestamps are passed through verbatim; the backend emits them without
	// a zone offset.
	ReviewedAt string `json:"reviewedAt,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

func (r Record) IsApproved() bool {
	return r.Status == StatusApproved
}

// ValidRange reports whether both dates are set and StartDate <= EndDate.
func (r Record) ValidRange() bool {
	return ValidRange(r.StartDate, r.EndDate)
}

// Page mirrors the backend's paginated list payload.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNo        int   `json:"pageNo"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// BalanceDetails is the per-type balance the backend computes.
type BalanceDetails struct {
	TotalDays     float64 `json:"totalDays"`
	UsedDays      float64 `json:"usedDays"`
	RemainingDays float64 `json:"remainingDays"`
}

type Balances map[Type]BalanceDetails

type TypeStatistic struct {
	Count     int     `json:"count"`
	TotalDays float64 `json:"totalDays"`
}

type MonthlyStatistic struct {
	Year                int                    `json:"year"`
	Month               int                    `json:"month"`
	MonthName           string                 `json:"monthName"`
	ApprovedLeaveCount  int                    `json:"approvedLeaveCount"`
	TotalLeaveDays      float64                `json:"totalLeaveDays"`
	LeaveTypeStatistics map[Type]TypeStatistic `json:"leaveTypeStatistics"`
}

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
