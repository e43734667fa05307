package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderdesk/internal/console"
	"orderdesk/internal/form"
	"orderdesk/internal/model"
	"orderdesk/internal/mw"
)

// Console actions never fail the HTTP request because of a backend error:
// the controller turns those into notifications and the browser is sent
// back to the page.

func ConsolePageHandler(ctrl *console.Controller, renderer *Renderer, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := renderer.Render(w, ctrl.View()); err != nil {
			mw.Logger(r.Context(), logger).WithError(err).Error("render failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func ActivateSectionHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, err := console.ParseSection(chi.URLParam(r, "section"))
		if err != nil {
			http.Error(w, "unknown section", http.StatusNotFound)
			return
		}

		_ = ctrl.ActivateSection(r.Context(), section)
		backToConsole(w, r)
	}
}

func ApplyFiltersHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		ctrl.SetFilters(strings.TrimSpace(r.PostFormValue("userId")), model.Status(r.PostFormValue("status")))
		backToConsole(w, r)
	}
}

func OpenDetailHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		_ = ctrl.OpenDetail(r.Context(), id)
		backToConsole(w, r)
	}
}

func CloseDetailHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.CloseDetail()
		backToConsole(w, r)
	}
}

func UpdateStatusHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		_ = ctrl.UpdateStatus(r.Context(), model.Status(r.PostFormValue("status")))
		backToConsole(w, r)
	}
}

func CancelOrderHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		_ = ctrl.CancelOrder(r.Context(), r.PostFormValue("confirm") == "yes")
		backToConsole(w, r)
	}
}

func CreateOrderHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !syncDraft(ctrl, w, r) {
			return
		}

		_ = ctrl.SubmitCreate(r.Context())
		backToConsole(w, r)
	}
}

func AddItemHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !syncDraft(ctrl, w, r) {
			return
		}

		ctrl.AddItemRow()
		backToConsole(w, r)
	}
}

func RemoveItemHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rowID, err := uuid.Parse(chi.URLParam(r, "rowID"))
		if err != nil {
			http.Error(w, "invalid row id", http.StatusBadRequest)
			return
		}
		if !syncDraft(ctrl, w, r) {
			return
		}

		ctrl.RemoveItemRow(rowID)
		backToConsole(w, r)
	}
}

func DismissNotificationHandler(ctrl *console.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid notification id", http.StatusBadRequest)
			return
		}

		ctrl.DismissNotification(id)
		backToConsole(w, r)
	}
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// syncDraft copies the posted creation form into the controller so typed
// values survive the round trip.
func syncDraft(ctrl *console.Controller, w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}

	ctrl.UpdateDraft(r.PostFormValue("userId"), r.PostFormValue("shippingAddress"), readRows(r))
	return true
}

// readRows zips the repeated row inputs back into rows, in form order.
func readRows(r *http.Request) []form.Row {
	ids := r.PostForm["rowId"]
	columns := [...][]string{
		form.FieldProductID:   r.PostForm["productId"],
		form.FieldProductName: r.PostForm["productName"],
		form.FieldQuantity:    r.PostForm["quantity"],
		form.FieldUnitPrice:   r.PostForm["unitPrice"],
	}

	n := len(ids)
	for _, col := range columns {
		n = max(n, len(col))
	}

	rows := make([]form.Row, 0, n)
	for i := 0; i < n; i++ {
		var row form.Row
		if i < len(ids) {
			if id, err := uuid.Parse(ids[i]); err == nil {
				row.ID = id
			}
		}
		for f, col := range columns {
			if i < len(col) {
				row.Fields[f] = col[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func backToConsole(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
