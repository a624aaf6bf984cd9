package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/model"
    "github.com/lberndt/gasthaus/internal/queue"
    "github.com/lberndt/gasthaus/internal/store"
)

// GuestHandler serves the guest-facing actions: reserving a table and
// placing an order.  The different-name conflict rule lives here, one
// layer above the store — the store accepts any reservation of a
// valid table.
type GuestHandler struct {
    Store *store.Store
}

// NewGuestHandler constructs a GuestHandler.  The store must be
// non-nil.
func NewGuestHandler(s *store.Store) *GuestHandler {
    if s == nil {
        panic("nil store passed to NewGuestHandler")
    }
    return &GuestHandler{Store: s}
}

// Reserve handles POST /v1/tables/:id/reserve.  The body must carry
// the guest's name.  A table reserved by a different guest yields
// 409; re-reserving under the same name succeeds and is a no-op on
// identity.
func (h *GuestHandler) Reserve(c echo.Context) error {
    tableID, okID := tableParam(c)
    if !okID {
        return fail(c, http.StatusBadRequest, msgUnknownTable)
    }
    var body struct {
        Name string `json:"name"`
    }
    if err := c.Bind(&body); err != nil || body.Name == "" {
        return fail(c, http.StatusBadRequest, msgNameMissing)
    }
    table, err := h.Store.Table(tableID)
    if err != nil {
        return storeError(c, err)
    }
    if table.Status == model.TableReserved && table.ReservedBy != nil && *table.ReservedBy != body.Name {
        return fail(c, http.StatusConflict, msgTableTaken)
    }
    if err := h.Store.Reserve(tableID, body.Name); err != nil {
        return storeError(c, err)
    }
    return ok(c, nil)
}

// CreateOrder handles POST /v1/tables/:id/order.  Omitting item_id is
// a valid "reserve only" call that never touches the order state.
// On success the created order is echoed back and an order_placed
// event is published for kitchen-side consumers; publish failures are
// logged inside the queue package and never fail the action.
func (h *GuestHandler) CreateOrder(c echo.Context) error {
    tableID, okID := tableParam(c)
    if !okID {
        return fail(c, http.StatusBadRequest, msgUnknownTable)
    }
    var body struct {
        Name   string `json:"name"`
        ItemID string `json:"item_id"`
    }
    if err := c.Bind(&body); err != nil || body.Name == "" {
        return fail(c, http.StatusBadRequest, msgNameMissing)
    }
    table, err := h.Store.Table(tableID)
    if err != nil {
        return storeError(c, err)
    }
    if table.Status == model.TableReserved && table.ReservedBy != nil && *table.ReservedBy != body.Name {
        return fail(c, http.StatusConflict, msgTableTaken)
    }
    if body.ItemID == "" {
        if err := h.Store.Reserve(tableID, body.Name); err != nil {
            return storeError(c, err)
        }
        return ok(c, nil)
    }
    order, err := h.Store.CreateOrder(tableID, body.Name, body.ItemID)
    if err != nil {
        return storeError(c, err)
    }
    _ = queue.PublishOrderEvent(c.Request().Context(), queue.OrderEvent{
        Type:       queue.EventOrderPlaced,
        TableID:    tableID,
        OrderID:    order.ID,
        GuestName:  order.Name,
        ItemName:   order.Item.Name,
        Price:      order.Item.Price,
        Status:     string(order.Status),
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
    return ok(c, echo.Map{"order": order})
}
