package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ytkg/orders/internal/service"
	"github.com/ytkg/orders/internal/storage"
)

type Handler struct {
	Memo     service.MemoServiceInterface
	Visitors service.VisitorServiceInterface
}

func NewHandler(memo service.MemoServiceInterface, visitors service.VisitorServiceInterface) *Handler {
	return &Handler{Memo: memo, Visitors: visitors}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.addOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.resetOrders).Methods("DELETE")
	r.HandleFunc("/api/orders/confirm", h.confirmOrders).Methods("POST")
	r.HandleFunc("/api/orders/confirmed", h.getConfirmedOrders).Methods("GET")
	r.HandleFunc("/api/orders/confirmed/qrcode", h.getConfirmedQRCode).Methods("GET")
	r.HandleFunc("/api/orders/notice", h.clearNotice).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}", h.removeOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/quantity", h.incrementOrderQuantity).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/customer", h.updateOrderCustomer).Methods("PUT")

	r.HandleFunc("/api/visitors", h.getVisitors).Methods("GET")
	r.HandleFunc("/api/visitors", h.addVisitor).Methods("POST")
	r.HandleFunc("/api/visitors/{id}", h.removeVisitor).Methods("DELETE")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// getMenu returns the drink catalog grouped by category.
// @Summary Menu grouped by category
// @Produce json
// @Success 200 {array} domain.MenuCategory
// @Router /api/menu [get]
func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.Memo.GroupedMenu()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

// getOrders returns the draft memo with its derived totals.
// @Summary Draft orders
// @Produce json
// @Success 200
// @Router /api/orders [get]
func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":       h.Memo.Orders(),
		"total_drinks": h.Memo.TotalDrinks(),
		"total_amount": h.Memo.TotalAmount(),
		"added_notice": h.Memo.AddedNotice(),
	})
}

// addOrder adds a draft order for a menu item.
// @Summary Add order from menu
// @Accept json
// @Produce json
// @Success 201 {object} domain.Order
// @Router /api/orders [post]
func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuID int `json:"menu_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	order, err := h.Memo.AddOrderFromMenu(r.Context(), payload.MenuID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMenuItem) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// removeOrder deletes one draft order.
// @Summary Remove draft order
// @Success 204
// @Router /api/orders/{id} [delete]
func (h *Handler) removeOrder(w http.ResponseWriter, r *http.Request) {
	h.Memo.RemoveOrder(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// incrementOrderQuantity applies a clamped quantity delta. The response
// carries reached_max so a press-and-hold repeater on the client can
// stop itself.
// @Summary Increment order quantity
// @Accept json
// @Produce json
// @Success 200
// @Router /api/orders/{id}/quantity [patch]
func (h *Handler) incrementOrderQuantity(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	reachedMax := h.Memo.IncrementOrderQuantity(mux.Vars(r)["id"], payload.Delta)
	writeJSON(w, http.StatusOK, map[string]bool{"reached_max": reachedMax})
}

// updateOrderCustomer assigns an order to a visitor name; "" unassigns.
// @Summary Update order customer
// @Accept json
// @Success 204
// @Router /api/orders/{id}/customer [put]
func (h *Handler) updateOrderCustomer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Customer string `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	h.Memo.UpdateOrderCustomer(mux.Vars(r)["id"], payload.Customer)
	w.WriteHeader(http.StatusNoContent)
}

// resetOrders wipes the draft memo. The destructive-action confirmation
// dialog is the client's responsibility.
// @Summary Reset draft orders
// @Success 204
// @Router /api/orders [delete]
func (h *Handler) resetOrders(w http.ResponseWriter, r *http.Request) {
	h.Memo.ResetDraftOrders()
	w.WriteHeader(http.StatusNoContent)
}

// confirmOrders snapshots the draft memo into the confirmed record.
// @Summary Confirm all draft orders
// @Produce json
// @Success 200
// @Router /api/orders/confirm [post]
func (h *Handler) confirmOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.Memo.ConfirmAllOrders(r.Context()); err != nil {
		if errors.Is(err, service.ErrNoDraftOrders) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeConfirmedState(w)
}

// getConfirmedOrders returns the confirmed snapshot with its grouping.
// @Summary Confirmed orders
// @Produce json
// @Success 200
// @Router /api/orders/confirmed [get]
func (h *Handler) getConfirmedOrders(w http.ResponseWriter, r *http.Request) {
	h.writeConfirmedState(w)
}

func (h *Handler) writeConfirmedState(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"confirmed_orders": h.Memo.ConfirmedOrders(),
		"grouped_orders":   h.Memo.GroupedConfirmedOrders(),
		"total_drinks":     h.Memo.ConfirmedTotalDrinks(),
		"total_amount":     h.Memo.ConfirmedTotalAmount(),
	})
}

// getConfirmedQRCode serves the share QR code for the latest snapshot.
// @Summary Confirmed snapshot QR code
// @Produce png
// @Success 200
// @Router /api/orders/confirmed/qrcode [get]
func (h *Handler) getConfirmedQRCode(w http.ResponseWriter, r *http.Request) {
	qr := h.Memo.ConfirmedQRCode()
	if len(qr) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(qr)
}

// clearNotice dismisses the added-order notice. The client owns the
// timing of dismissal.
// @Summary Clear added-order notice
// @Success 204
// @Router /api/orders/notice [delete]
func (h *Handler) clearNotice(w http.ResponseWriter, r *http.Request) {
	h.Memo.ClearAddedNotice()
	w.WriteHeader(http.StatusNoContent)
}

// getVisitors lists the visitor registry.
// @Summary List visitors
// @Produce json
// @Success 200 {array} domain.Visitor
// @Router /api/visitors [get]
func (h *Handler) getVisitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Visitors.Visitors())
}

// addVisitor registers a visitor name.
// @Summary Add visitor
// @Accept json
// @Produce json
// @Success 201 {object} domain.Visitor
// @Router /api/visitors [post]
func (h *Handler) addVisitor(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	visitor, err := h.Visitors.AddVisitor(r.Context(), payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyVisitorName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrDuplicateVisitorName):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.writeVisitorCookie(w)
	writeJSON(w, http.StatusCreated, visitor)
}

// removeVisitor drops a visitor and dissociates its draft orders.
// @Summary Remove visitor
// @Success 204
// @Router /api/visitors/{id} [delete]
func (h *Handler) removeVisitor(w http.ResponseWriter, r *http.Request) {
	h.Visitors.RemoveVisitor(r.Context(), mux.Vars(r)["id"])
	h.writeVisitorCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// writeVisitorCookie mirrors the encoded registry into a browser cookie
// with the codec's storage attributes.
func (h *Handler) writeVisitorCookie(w http.ResponseWriter) {
	attrs := storage.DefaultAttributes()
	http.SetCookie(w, &http.Cookie{
		Name:     storage.VisitorsKey,
		Value:    h.Visitors.EncodedVisitors(),
		Path:     attrs.Path,
		MaxAge:   attrs.MaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
