// Package queue publishes order lifecycle events to RabbitMQ and
// hosts the background consumer that mirrors them into the kitchen
// log.  The broker is strictly additive: the in-memory store is the
// source of truth and every publish failure is swallowed after
// logging.
package queue

// Event types carried on the order.events queue.
const (
    EventOrderPlaced   = "order_placed"
    EventStatusChanged = "status_changed"
    EventTableFreed    = "table_freed"
)

// OrderEvent is published after each successful mutation of a
// table's order state.  It carries enough information for downstream
// consumers (kitchen display, analytics) to act without querying the
// service.  Fields irrelevant to an event type are left empty.
type OrderEvent struct {
    Type       string  `json:"type"`
    TableID    int     `json:"table_id"`
    OrderID    string  `json:"order_id,omitempty"`
    GuestName  string  `json:"guest_name,omitempty"`
    ItemName   string  `json:"item_name,omitempty"`
    Price      float64 `json:"price,omitempty"`
    Status     string  `json:"status,omitempty"`
    OccurredAt string  `json:"occurred_at"`
}
