package store

import "sync"

// Subscriber is a live one-way push connection to a client.  Send
// delivers one serialized order snapshot; a non-nil error marks the
// connection as dead and causes automatic deregistration.  Send must
// not block indefinitely — slow consumers should fail fast and rely
// on the query surface for a fresh snapshot after reconnecting.
type Subscriber interface {
    Send(payload []byte) error
}

// broadcaster keeps the per-table subscriber sets.  Registration
// order is preserved so broadcasts deliver in subscribe order.  The
// broadcaster does not validate table numbers; the Store does that
// before delegating.
type broadcaster struct {
    mu   sync.Mutex
    subs map[int][]Subscriber
}

func newBroadcaster() *broadcaster {
    return &broadcaster{subs: make(map[int][]Subscriber)}
}

// subscribe registers sub under tableID.  The same handle may not be
// registered twice for the same table; duplicates are ignored.
func (b *broadcaster) subscribe(tableID int, sub Subscriber) {
    b.mu.Lock()
    defer b.mu.Unlock()
    for _, s := range b.subs[tableID] {
        if s == sub {
            return
        }
    }
    b.subs[tableID] = append(b.subs[tableID], sub)
}

// unsubscribe removes sub from tableID's set; absent handles are a
// no-op.  An emptied set is discarded rather than kept around.
func (b *broadcaster) unsubscribe(tableID int, sub Subscriber) {
    b.mu.Lock()
    defer b.mu.Unlock()
    list := b.subs[tableID]
    for i, s := range list {
        if s == sub {
            b.subs[tableID] = append(list[:i], list[i+1:]...)
            break
        }
    }
    if len(b.subs[tableID]) == 0 {
        delete(b.subs, tableID)
    }
}

// broadcast pushes payload to every subscriber of tableID in
// registration order.  A failed send drops that subscriber but never
// aborts delivery to the rest.  There is no buffering or replay: a
// handle subscribed after the call never sees this payload.
func (b *broadcaster) broadcast(tableID int, payload []byte) {
    b.mu.Lock()
    defer b.mu.Unlock()
    list := b.subs[tableID]
    if len(list) == 0 {
        return
    }
    kept := list[:0]
    for _, s := range list {
        if err := s.Send(payload); err != nil {
            continue // connection gone, drop it
        }
        kept = append(kept, s)
    }
    if len(kept) == 0 {
        delete(b.subs, tableID)
        return
    }
    b.subs[tableID] = kept
}

// count returns the number of live subscribers for tableID.
func (b *broadcaster) count(tableID int) int {
    b.mu.Lock()
    defer b.mu.Unlock()
    return len(b.subs[tableID])
}
