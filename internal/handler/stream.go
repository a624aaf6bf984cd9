package handler

import (
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/store"
)

// StreamHandler serves the per-table live-update endpoint as a
// server-sent-events stream.  Guests and the admin panel open one
// stream per watched table; every order mutation pushes a fresh
// snapshot, and comment-only ping lines keep intermediaries from
// cutting the idle connection.
type StreamHandler struct {
    Store     *store.Store
    Heartbeat time.Duration // ping cadence; 30s in production
}

// NewStreamHandler constructs a StreamHandler.  The store must be
// non-nil; a non-positive heartbeat falls back to 30 seconds.
func NewStreamHandler(s *store.Store, heartbeat time.Duration) *StreamHandler {
    if s == nil {
        panic("nil store passed to NewStreamHandler")
    }
    if heartbeat <= 0 {
        heartbeat = 30 * time.Second
    }
    return &StreamHandler{Store: s, Heartbeat: heartbeat}
}

// errStreamFull marks a subscriber whose outbound buffer is full.
// The broadcaster treats it like any other failed send and drops the
// subscriber; the client is expected to reconnect and re-seed from
// the query surface.
var errStreamFull = errors.New("subscriber buffer full")

// streamSubscriber bridges the broadcaster to the handler goroutine
// writing the HTTP response.  Send never blocks: the buffer absorbs
// bursts, and overflowing it fails the send.
type streamSubscriber struct {
    ch chan []byte
}

func newStreamSubscriber() *streamSubscriber {
    return &streamSubscriber{ch: make(chan []byte, 16)}
}

func (s *streamSubscriber) Send(payload []byte) error {
    select {
    case s.ch <- payload:
        return nil
    default:
        return errStreamFull
    }
}

// OrderStatus handles GET /v1/order-status?tableId=N.  Preconditions
// fail with a bare status instead of opening a stream: 400 for a
// missing, non-numeric or unknown tableId, 404 when the table has no
// active order.  On success the first event is the current order
// snapshot; the stream then follows every mutation until the client
// disconnects.
func (h *StreamHandler) OrderStatus(c echo.Context) error {
    param := c.QueryParam("tableId")
    if param == "" {
        return c.String(http.StatusBadRequest, "tableId parameter is required")
    }
    tableID, err := strconv.Atoi(param)
    if err != nil {
        return c.String(http.StatusBadRequest, "invalid tableId")
    }
    table, err := h.Store.Table(tableID)
    if err != nil {
        return c.String(http.StatusBadRequest, "invalid tableId")
    }
    if table.Order == nil {
        return c.String(http.StatusNotFound, "order not found")
    }

    res := c.Response()
    res.Header().Set(echo.HeaderContentType, "text/event-stream")
    res.Header().Set("Cache-Control", "no-cache, no-transform")
    res.Header().Set("Connection", "keep-alive")
    res.Header().Set("X-Accel-Buffering", "no")
    res.WriteHeader(http.StatusOK)

    // Seed the stream with the snapshot taken above.  Updates between
    // this write and the Subscribe below are not replayed; clients
    // reconcile by reconnecting, which re-seeds.
    snapshot, err := json.Marshal(table.Order)
    if err != nil {
        return nil
    }
    if err := writeEvent(res, snapshot); err != nil {
        return nil
    }

    sub := newStreamSubscriber()
    if err := h.Store.Subscribe(tableID, sub); err != nil {
        return nil
    }
    defer h.Store.Unsubscribe(tableID, sub)

    ping := time.NewTicker(h.Heartbeat)
    defer ping.Stop()

    ctx := c.Request().Context()
    for {
        select {
        case <-ctx.Done():
            return nil
        case payload := <-sub.ch:
            if err := writeEvent(res, payload); err != nil {
                return nil
            }
        case <-ping.C:
            if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
                return nil
            }
            res.Flush()
        }
    }
}

// writeEvent writes one SSE data frame and flushes it to the client.
func writeEvent(res *echo.Response, payload []byte) error {
    if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
        return err
    }
    res.Flush()
    return nil
}
