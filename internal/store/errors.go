// Package store holds the in-memory table and order state shared by
// every request handler, together with the per-table live-update
// fan-out.  Sentinel errors let the handler layer map failures onto
// HTTP status codes without inspecting error strings.
package store

import "errors"

// ErrTableNotFound is returned when a table number lies outside the
// fixed registered range.  Handlers should translate this into an
// HTTP 404 response.
var ErrTableNotFound = errors.New("table not found")

// ErrMenuItemNotFound is returned when an order names a menu item id
// that does not exist in the catalog.  Handlers should translate this
// into an HTTP 404 response.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrOrderNotFound is returned when an operation needs an active
// order on a table that has none.
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidStatus is returned when a status update names a value an
// active order may not carry (IDLE or an unknown string).  Handlers
// should translate this into an HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid order status")
