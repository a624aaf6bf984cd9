package handler

import (
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/store"
)

// User-facing messages are localized for the guest frontend; staff
// see the same strings on the admin panel.  Internal error detail
// never crosses the action boundary.
const (
    msgTableTaken   = "Dieser Tisch ist bereits von einem anderen Gast reserviert."
    msgUnknownTable = "Dieser Tisch existiert nicht."
    msgUnknownItem  = "Dieses Gericht existiert nicht."
    msgNoOrder      = "Für diesen Tisch liegt keine Bestellung vor."
    msgBadStatus    = "Ungültiger Bestellstatus."
    msgNameMissing  = "Bitte einen Namen angeben."
    msgGeneric      = "Ein Fehler ist aufgetreten."
)

// ok writes the tagged success result of an action.  Extra key/value
// pairs (e.g. the created order) are merged into the body.
func ok(c echo.Context, extra echo.Map) error {
    body := echo.Map{"success": true}
    for k, v := range extra {
        body[k] = v
    }
    return c.JSON(http.StatusOK, body)
}

// fail writes the tagged failure result of an action with the given
// HTTP status and localized message.
func fail(c echo.Context, status int, msg string) error {
    return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// storeError converts a store failure into an action response.  Known
// sentinels map onto 400/404 with their localized message; anything
// unexpected is logged and hidden behind the generic message.
func storeError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, store.ErrTableNotFound):
        return fail(c, http.StatusNotFound, msgUnknownTable)
    case errors.Is(err, store.ErrMenuItemNotFound):
        return fail(c, http.StatusNotFound, msgUnknownItem)
    case errors.Is(err, store.ErrOrderNotFound):
        return fail(c, http.StatusNotFound, msgNoOrder)
    case errors.Is(err, store.ErrInvalidStatus):
        return fail(c, http.StatusBadRequest, msgBadStatus)
    }
    log.Printf("handler: unexpected store error: %v", err)
    return fail(c, http.StatusInternalServerError, msgGeneric)
}

// tableParam parses the :id path parameter.  The boundary treats a
// missing or non-numeric id as InvalidInput before the store is ever
// consulted.
func tableParam(c echo.Context) (int, bool) {
    id, err := strconv.Atoi(c.Param("id"))
    if err != nil {
        return 0, false
    }
    return id, true
}
