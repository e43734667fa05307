package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/console"
	"orderdesk/internal/model"
	"orderdesk/internal/notify"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer turns a console view into the HTML page.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, v console.View) error {
	if err := r.tmpl.ExecuteTemplate(w, "console.html", r.page(v)); err != nil {
		return fmt.Errorf("render console: %w", err)
	}
	return nil
}

type pageView struct {
	ListActive    bool
	CreateActive  bool
	OwnerFilter   string
	StatusFilter  string
	Statuses      []string
	Orders        []orderCardView
	Detail        *orderDetailView
	Draft         draftView
	OrdersNotices []noticeView
	CreateNotices []noticeView
	DetailNotices []noticeView
}

type orderCardView struct {
	ID          int64
	UserID      int64
	Status      string
	StatusClass string
	Total       string
	OrderDate   string
	ItemsCount  int
}

type orderDetailView struct {
	orderCardView
	ShippingAddress string
	Items           []orderItemView
}

type orderItemView struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   string
	Total       string
}

type draftView struct {
	UserID          string
	ShippingAddress string
	Rows            []draftRowView
}

type draftRowView struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    string
	UnitPrice   string
}

type noticeView struct {
	ID      string
	Kind    string
	Message string
}

func (r *Renderer) page(v console.View) pageView {
	p := pageView{
		ListActive:   v.Section == console.SectionList,
		CreateActive: v.Section == console.SectionCreate,
		OwnerFilter:  v.OwnerFilter,
		StatusFilter: string(v.StatusFilter),
		Orders:       make([]orderCardView, 0, len(v.Orders)),
		Draft: draftView{
			UserID:          v.Draft.UserID,
			ShippingAddress: v.Draft.ShippingAddress,
		},
		OrdersNotices: notices(v.Notifications[notify.RegionOrders]),
		CreateNotices: notices(v.Notifications[notify.RegionCreate]),
		DetailNotices: notices(v.Notifications[notify.RegionDetail]),
	}

	for _, s := range model.KnownStatuses {
		p.Statuses = append(p.Statuses, string(s))
	}
	for _, o := range v.Orders {
		p.Orders = append(p.Orders, r.card(o))
	}
	if v.DetailOpen() && v.Detail != nil {
		p.Detail = r.detail(*v.Detail)
	}
	for _, row := range v.Draft.Rows() {
		p.Draft.Rows = append(p.Draft.Rows, draftRowView{
			ID:          row.ID.String(),
			ProductID:   row.ProductID(),
			ProductName: row.ProductName(),
			Quantity:    row.Quantity(),
			UnitPrice:   row.UnitPrice(),
		})
	}
	return p
}

func (r *Renderer) card(o model.Order) orderCardView {
	return orderCardView{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		StatusClass: "status-" + strings.ToLower(string(o.Status)),
		Total:       money(o.TotalAmount),
		OrderDate:   o.OrderDate.Display(),
		ItemsCount:  len(o.OrderItems),
	}
}

func (r *Renderer) detail(o model.Order) *orderDetailView {
	d := &orderDetailView{
		orderCardView:   r.card(o),
		ShippingAddress: o.ShippingAddress,
	}
	for _, it := range o.OrderItems {
		d.Items = append(d.Items, orderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			Total:       money(it.TotalPrice),
		})
	}
	return d
}

// money prints the amount as the backend sent it, without rounding or
// grouping.
func money(d decimal.Decimal) string {
	return "$" + d.String()
}

func notices(items []notify.Notification) []noticeView {
	out := make([]noticeView, 0, len(items))
	for _, n := range items {
		out = append(out, noticeView{
			ID:      n.ID.String(),
			Kind:    string(n.Kind),
			Message: n.Message,
		})
	}
	return out
}
