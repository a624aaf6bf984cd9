package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/menu"
    "github.com/lberndt/gasthaus/internal/store"
)

// PublicHandler exposes the read-only query surface used by the
// rendering layers to seed their initial state before subscribing to
// live updates.  None of these endpoints mutate or broadcast.
type PublicHandler struct {
    Store *store.Store
    Menu  *menu.Catalog
}

// NewPublicHandler constructs a PublicHandler.  Both dependencies
// must be non-nil.
func NewPublicHandler(s *store.Store, m *menu.Catalog) *PublicHandler {
    if s == nil || m == nil {
        panic("nil dependency passed to NewPublicHandler")
    }
    return &PublicHandler{Store: s, Menu: m}
}

// GetTables handles GET /v1/tables, returning every table ordered by
// table number for the admin overview.
func (h *PublicHandler) GetTables(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Store.Tables())
}

// GetTable handles GET /v1/tables/:id, returning a snapshot of a
// single table or 404 when the id lies outside the fixed range.
func (h *PublicHandler) GetTable(c echo.Context) error {
    tableID, okID := tableParam(c)
    if !okID {
        return fail(c, http.StatusBadRequest, msgUnknownTable)
    }
    table, err := h.Store.Table(tableID)
    if err != nil {
        return storeError(c, err)
    }
    return c.JSON(http.StatusOK, table)
}

// GetMenu handles GET /v1/menu.  The catalog never changes while the
// process runs, which makes this the one endpoint worth response
// caching.
func (h *PublicHandler) GetMenu(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Menu.Items())
}
