package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/model"
    "github.com/lberndt/gasthaus/internal/queue"
    "github.com/lberndt/gasthaus/internal/store"
)

// AdminHandler serves the staff-facing actions: advancing an order
// through the kitchen and clearing a table.  Status updates overwrite
// unconditionally among the active statuses, so staff can also jump
// backwards to correct a misclick.
type AdminHandler struct {
    Store *store.Store
}

// NewAdminHandler constructs an AdminHandler.  The store must be
// non-nil.
func NewAdminHandler(s *store.Store) *AdminHandler {
    if s == nil {
        panic("nil store passed to NewAdminHandler")
    }
    return &AdminHandler{Store: s}
}

// UpdateOrderStatus handles PATCH /v1/tables/:id/order/status.  The
// new status is broadcast to every live subscriber of the table
// before the response is written.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
    tableID, okID := tableParam(c)
    if !okID {
        return fail(c, http.StatusBadRequest, msgUnknownTable)
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil || body.Status == "" {
        return fail(c, http.StatusBadRequest, msgBadStatus)
    }
    if err := h.Store.UpdateOrderStatus(tableID, model.OrderStatus(body.Status)); err != nil {
        return storeError(c, err)
    }
    _ = queue.PublishOrderEvent(c.Request().Context(), queue.OrderEvent{
        Type:       queue.EventStatusChanged,
        TableID:    tableID,
        Status:     body.Status,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
    return ok(c, nil)
}

// FreeTable handles POST /v1/tables/:id/free.  Freeing resets the
// table to FREE, clears the guest name and destroys any active
// order.  It always succeeds for a valid table.
func (h *AdminHandler) FreeTable(c echo.Context) error {
    tableID, okID := tableParam(c)
    if !okID {
        return fail(c, http.StatusBadRequest, msgUnknownTable)
    }
    if err := h.Store.Free(tableID); err != nil {
        return storeError(c, err)
    }
    _ = queue.PublishOrderEvent(c.Request().Context(), queue.OrderEvent{
        Type:       queue.EventTableFreed,
        TableID:    tableID,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
    return ok(c, nil)
}
