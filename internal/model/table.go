package model

// TableStatus describes whether a table is currently available or
// held by a guest.  Only two states exist; a table with a served but
// not yet cleared order is still RESERVED until staff frees it.
type TableStatus string

const (
    TableFree     TableStatus = "FREE"     // table is available for guests
    TableReserved TableStatus = "RESERVED" // table is held by a named guest
)

// Table is an addressable seating unit.  Tables are pre-registered at
// process start from a fixed numeric range and are never created or
// deleted afterwards.  A table holds at most one active order at a
// time, and the order is always absent while the table is FREE.
//
// Fields:
//  Status     – FREE or RESERVED.
//  ReservedBy – name of the guest holding the table; nil when FREE.
//  Order      – the single active order, if any.
type Table struct {
    Status     TableStatus `json:"status"`
    ReservedBy *string     `json:"reservedBy"`
    Order      *Order      `json:"order,omitempty"`
}

// TableEntry pairs a table number with its state for ordered listings
// such as the admin overview.
type TableEntry struct {
    TableID int   `json:"tableId"`
    Table   Table `json:"table"`
}
