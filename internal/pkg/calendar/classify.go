package calendar

import "github.com/cmlabs-hris/leave-calendar/internal/domain/leave"

// Category is the visual classification of a booked day.
type Category struct {
	Token     string `json:"token"`
	ClassName string `json:"className"`
	Color     string `json:"color"`
	Label     string `json:"label"`
}

var (
	CategoryAnnual = Category{
		Token:     "annual",
		ClassName: "bg-primary/20 text-primary-foreground hover:bg-primary/30",
		Color:     "#8b5cf6",
		Label:     leave.TypeAnnual.Label(),
	}
	CategorySick = Category{
		Token:     "sick",
		ClassName: "bg-amber-500/20 text-amber-900 hover:bg-amber-500/30",
		Color:     "#f59e0b",
		Label:     leave.TypeSick.Label(),
	}
	CategoryMaternity = Category{
		Token:     "maternity",
		ClassName: "bg-pink-500/20 text-pink-900 hover:bg-pink-500/30",
		Color:     "#ec4899",
		Label:     leave.TypeMaternity.Label(),
	}
	CategoryPaternity = Category{
		Token:     "paternity",
		ClassName: "bg-emerald-500/20 text-emerald-900 hover:bg-emerald-500/30",
		Color:     "#10b981",
		Label:     leave.TypePaternity.Label(),
	}
	CategoryUnpaid = Category{
		Token:     "unpaid",
		ClassName: "bg-slate-500/20 text-slate-900 hover:bg-slate-500/30",
		Color:     "#64748b",
		Label:     leave.TypeUnpaid.Label(),
	}
	CategoryBereavement = Category{
		Token:     "bereavement",
		ClassName: "bg-indigo-500/20 text-indigo-900 hover:bg-indigo-500/30",
		Color:     "#6366f1",
		Label:     leave.TypeBereavement.Label(),
	}
	// CategoryDefault is the neutral fallback for types this build does not know.
	CategoryDefault = Category{
		Token:     "default",
		ClassName: "bg-muted text-muted-foreground hover:bg-muted/80",
		Color:     "#94a3b8",
		Label:     "Other Leave",
	}
)

// ClassifyDay maps a leave type to its category. It is total: unknown types
// get CategoryDefault.
func ClassifyDay(t leave.Type) Category {
	switch t {
	case leave.TypeAnnual:
		return CategoryAnnual
	case leave.TypeSick:
		return CategorySick
	case leave.TypeMaternity:
		return CategoryMaternity
	case leave.TypePaternity:
		return CategoryPaternity
	case leave.TypeUnpaid:
		return CategoryUnpaid
	case leave.TypeBereavement:
		return CategoryBereavement
	default:
		return CategoryDefault
	}
}

// Legend lists the categories in display order, ending with the fallback.
func Legend() []Category {
	types := leave.KnownTypes()
	out := make([]Category, 0, len(types)+1)
	for _, t := range types {
		out = append(out, ClassifyDay(t))
	}
	return append(out, CategoryDefault)
}
