package model

import "time"

// OrderStatus is the kitchen-side state of an order.  The values are
// wire-compatible with the guest frontend, including the historical
// spelling of OrderOnTheWay.  IDLE is a placeholder for "no order
// yet" in client state machines; a real order is always created
// directly into ORDER_RECEIVED and never holds IDLE.
type OrderStatus string

const (
    OrderIdle      OrderStatus = "IDLE"
    OrderReceived  OrderStatus = "ORDER_RECEIVED"
    OrderPreparing OrderStatus = "ORDER_PREPARING"
    OrderOnTheWay  OrderStatus = "ORDER_ON_THEY_WAY_TO_TABLE"
    OrderServed    OrderStatus = "ORDER_SERVED"
)

// ActiveStatus reports whether s is one of the four statuses a placed
// order may carry.  Status updates may jump between these freely (for
// example to correct a misclick on the admin panel); only IDLE and
// unknown strings are rejected.
func ActiveStatus(s OrderStatus) bool {
    switch s {
    case OrderReceived, OrderPreparing, OrderOnTheWay, OrderServed:
        return true
    }
    return false
}

// Order is a guest's single active food request tied to a table.  The
// menu item is snapshotted at creation time so later catalog edits do
// not retroactively alter a placed order.  An order is owned by its
// table and destroyed when the table is freed; placing a new order
// replaces any prior one (no history is kept).
//
// Fields:
//  ID        – generated unique identifier.
//  TableID   – owning table number.
//  Name      – guest who placed the order.
//  Item      – menu item snapshot, copied at creation.
//  Status    – kitchen progress, see OrderStatus.
//  CreatedAt – creation timestamp.
type Order struct {
    ID        string      `json:"id"`
    TableID   int         `json:"tableId"`
    Name      string      `json:"name"`
    Item      MenuItem    `json:"item"`
    Status    OrderStatus `json:"status"`
    CreatedAt time.Time   `json:"createdAt"`
}
