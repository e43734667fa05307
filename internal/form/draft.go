package form

import (
	"github.com/google/uuid"
)

// Field positions inside a line-item row.
const (
	FieldProductID = iota
	FieldProductName
	FieldQuantity
	FieldUnitPrice
	fieldCount
)

// Row is one line-item input row as typed by the user. Values are raw
// strings; nothing is parsed until submission.
type Row struct {
	ID     uuid.UUID
	Fields [fieldCount]string
}

func NewRow() Row {
	return Row{ID: uuid.New()}
}

func (r Row) ProductID() string   { return r.Fields[FieldProductID] }
func (r Row) ProductName() string { return r.Fields[FieldProductName] }
func (r Row) Quantity() string    { return r.Fields[FieldQuantity] }
func (r Row) UnitPrice() string   { return r.Fields[FieldUnitPrice] }

// Draft is the creation form: the top-level fields plus at least one row.
type Draft struct {
	UserID          string
	ShippingAddress string
	rows            []Row
}

func NewDraft() *Draft {
	return &Draft{rows: []Row{NewRow()}}
}

// Rows returns a copy of the rows in form order.
func (d *Draft) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// SetRows replaces the rows with what the form currently shows. An empty
// slice leaves a single blank row behind.
func (d *Draft) SetRows(rows []Row) {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		out = append(out, NewRow())
	}
	d.rows = out
}

// AddRow appends a blank row and returns it.
func (d *Draft) AddRow() Row {
	r := NewRow()
	d.rows = append(d.rows, r)
	return r
}

// RemoveRow deletes the row with the given id. The last remaining row is
// cleared instead of deleted. Unknown ids are ignored.
func (d *Draft) RemoveRow(id uuid.UUID) bool {
	for i, r := range d.rows {
		if r.ID != id {
			continue
		}
		if len(d.rows) == 1 {
			d.rows[0].Fields = [fieldCount]string{}
			return true
		}
		d.rows = append(d.rows[:i], d.rows[i+1:]...)
		return true
	}
	return false
}

// Reset clears the top-level fields and restores a single blank row.
func (d *Draft) Reset() {
	d.UserID = ""
	d.ShippingAddress = ""
	d.rows = []Row{NewRow()}
}

// Clone returns a deep copy safe to hand to a renderer.
func (d *Draft) Clone() Draft {
	return Draft{
		UserID:          d.UserID,
		ShippingAddress: d.ShippingAddress,
		rows:            d.Rows(),
	}
}
