package store

import (
    "encoding/json"
    "sort"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/lberndt/gasthaus/internal/menu"
    "github.com/lberndt/gasthaus/internal/model"
)

// Store is the process-wide table and order state.  It is constructed
// once at startup and handed to every handler by reference; it is
// never re-initialized per request.  A single RWMutex guards all
// table mutations so each reserve/order/free runs as one atomic
// read-modify-write, and the broadcast triggered by an order mutation
// completes before the mutating call returns.
type Store struct {
    mu      sync.RWMutex
    tables  map[int]*model.Table
    ids     []int // registered table numbers, ascending
    catalog *menu.Catalog
    bus     *broadcaster
}

// New creates a store with tables numbered 1 through tableCount, all
// FREE.  The catalog resolves menu item ids during order creation.
func New(tableCount int, catalog *menu.Catalog) *Store {
    tables := make(map[int]*model.Table, tableCount)
    ids := make([]int, 0, tableCount)
    for n := 1; n <= tableCount; n++ {
        tables[n] = &model.Table{Status: model.TableFree}
        ids = append(ids, n)
    }
    sort.Ints(ids)
    return &Store{
        tables:  tables,
        ids:     ids,
        catalog: catalog,
        bus:     newBroadcaster(),
    }
}

// Table returns a snapshot of the given table.  The returned value
// (including its order, if any) is a copy decoupled from later store
// mutation.
func (s *Store) Table(tableID int) (model.Table, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    t, ok := s.tables[tableID]
    if !ok {
        return model.Table{}, ErrTableNotFound
    }
    return snapshot(t), nil
}

// Tables returns snapshots of every table ordered by table number,
// for the admin overview.
func (s *Store) Tables() []model.TableEntry {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.TableEntry, 0, len(s.ids))
    for _, id := range s.ids {
        out = append(out, model.TableEntry{TableID: id, Table: snapshot(s.tables[id])})
    }
    return out
}

// TableNumbers returns the registered table numbers in ascending
// order.  Callers must not modify the returned slice.
func (s *Store) TableNumbers() []int {
    return s.ids
}

// Reserve marks the table as RESERVED by name.  An existing order is
// preserved.  Reservation policy (rejecting a table held by a
// different guest) is enforced one layer above; the store itself
// accepts any reservation of a valid table.  Reservations do not
// broadcast: the live-update stream only opens once an order exists.
func (s *Store) Reserve(tableID int, name string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    t, ok := s.tables[tableID]
    if !ok {
        return ErrTableNotFound
    }
    t.Status = model.TableReserved
    t.ReservedBy = &name
    return nil
}

// Free resets the table to FREE, clearing the guest name and
// destroying any active order.  It always succeeds for a valid table.
func (s *Store) Free(tableID int) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    t, ok := s.tables[tableID]
    if !ok {
        return ErrTableNotFound
    }
    t.Status = model.TableFree
    t.ReservedBy = nil
    t.Order = nil
    return nil
}

// CreateOrder places a new order for the table, snapshotting the menu
// item so later catalog edits cannot alter it.  The order gets a
// fresh id, the current timestamp and status ORDER_RECEIVED, and
// replaces any prior order on the table.  If the table is not
// RESERVED the store reserves it under the guest's name; the normal
// guest flow reserves first, so this is only a guard.  All current
// subscribers of the table receive the new order before CreateOrder
// returns.
func (s *Store) CreateOrder(tableID int, name, itemID string) (model.Order, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    t, ok := s.tables[tableID]
    if !ok {
        return model.Order{}, ErrTableNotFound
    }
    item, ok := s.catalog.Get(itemID)
    if !ok {
        return model.Order{}, ErrMenuItemNotFound
    }
    order := model.Order{
        ID:      uuid.NewString(),
        TableID: tableID,
        Name:    name,
        Item: model.MenuItem{
            ID:          item.ID,
            Name:        item.Name,
            Description: item.Description,
            Price:       item.Price,
        },
        Status:    model.OrderReceived,
        CreatedAt: time.Now(),
    }
    if t.Status != model.TableReserved {
        t.Status = model.TableReserved
        t.ReservedBy = &name
    }
    o := order
    t.Order = &o
    s.broadcastOrder(tableID, order)
    return order, nil
}

// UpdateOrderStatus overwrites the order's status and broadcasts the
// result.  Any of the four active statuses is accepted regardless of
// the current one — jumps backwards are allowed so staff can correct
// a misclick.  Id, item and timestamp are untouched.
func (s *Store) UpdateOrderStatus(tableID int, status model.OrderStatus) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    t, ok := s.tables[tableID]
    if !ok {
        return ErrTableNotFound
    }
    if !model.ActiveStatus(status) {
        return ErrInvalidStatus
    }
    if t.Order == nil {
        return ErrOrderNotFound
    }
    t.Order.Status = status
    s.broadcastOrder(tableID, *t.Order)
    return nil
}

// Subscribe registers a live-update handle for the table.  The handle
// receives a serialized order snapshot on every order mutation until
// it is unsubscribed or a send to it fails.
func (s *Store) Subscribe(tableID int, sub Subscriber) error {
    s.mu.RLock()
    _, ok := s.tables[tableID]
    s.mu.RUnlock()
    if !ok {
        return ErrTableNotFound
    }
    s.bus.subscribe(tableID, sub)
    return nil
}

// Unsubscribe removes a live-update handle; unknown handles are a
// no-op.
func (s *Store) Unsubscribe(tableID int, sub Subscriber) {
    s.bus.unsubscribe(tableID, sub)
}

// Subscribers reports the number of live handles for the table.
func (s *Store) Subscribers(tableID int) int {
    return s.bus.count(tableID)
}

// broadcastOrder serializes the order once and fans it out.  Called
// with s.mu held, which keeps mutation and delivery one atomic step
// for anyone awaiting the mutating call.
func (s *Store) broadcastOrder(tableID int, order model.Order) {
    payload, err := json.Marshal(order)
    if err != nil {
        return // model.Order always marshals; nothing useful to do here
    }
    s.bus.broadcast(tableID, payload)
}

// snapshot deep-copies a table so callers never share memory with the
// store.
func snapshot(t *model.Table) model.Table {
    out := model.Table{Status: t.Status}
    if t.ReservedBy != nil {
        name := *t.ReservedBy
        out.ReservedBy = &name
    }
    if t.Order != nil {
        o := *t.Order
        out.Order = &o
    }
    return out
}
