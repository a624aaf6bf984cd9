package handler_test

import (
    "bufio"
    "bytes"
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lberndt/gasthaus/internal/handler"
    "github.com/lberndt/gasthaus/internal/menu"
    "github.com/lberndt/gasthaus/internal/model"
    "github.com/lberndt/gasthaus/internal/router"
    "github.com/lberndt/gasthaus/internal/store"
)

const testMenuJSON = `[
  {"id": "1", "name": "Wiener Schnitzel", "description": "Klassisches paniertes Kalbsschnitzel mit Pommes", "price": 18.9},
  {"id": "2", "name": "Sauerbraten", "description": "Mariniertes Rindfleisch mit Rotkohl und Klößen", "price": 16.5}
]`

// newTestApp wires the full route table the way cmd/server does,
// without Redis (limiter and cache pass through as nil middleware).
func newTestApp(t *testing.T) (*echo.Echo, *store.Store) {
    t.Helper()
    path := filepath.Join(t.TempDir(), "menu.json")
    if err := os.WriteFile(path, []byte(testMenuJSON), 0o644); err != nil {
        t.Fatalf("write menu fixture: %v", err)
    }
    catalog, err := menu.Load(path)
    if err != nil {
        t.Fatalf("load menu fixture: %v", err)
    }
    st := store.New(10, catalog)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterActions(e, handler.NewGuestHandler(st), handler.NewAdminHandler(st), nil)
    router.RegisterPublic(e, handler.NewPublicHandler(st, catalog), nil)
    router.RegisterStream(e, handler.NewStreamHandler(st, 50*time.Millisecond))
    return e, st
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
    t.Helper()
    var reader *bytes.Reader
    if body == "" {
        reader = bytes.NewReader(nil)
    } else {
        reader = bytes.NewReader([]byte(body))
    }
    req := httptest.NewRequest(method, target, reader)
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

type actionResult struct {
    Success bool         `json:"success"`
    Error   string       `json:"error"`
    Order   *model.Order `json:"order"`
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) actionResult {
    t.Helper()
    var res actionResult
    if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
        t.Fatalf("decode action result %q: %v", rec.Body.String(), err)
    }
    return res
}

func TestReserveConflictRules(t *testing.T) {
    e, _ := newTestApp(t)

    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/1/reserve", `{"name":"Anna"}`); rec.Code != http.StatusOK {
        t.Fatalf("reserve Anna: status %d, body %s", rec.Code, rec.Body.String())
    }

    rec := doJSON(t, e, http.MethodPost, "/v1/tables/1/reserve", `{"name":"Bruno"}`)
    if rec.Code != http.StatusConflict {
        t.Fatalf("reserve Bruno on Anna's table: status %d, want 409", rec.Code)
    }
    if res := decodeResult(t, rec); res.Success || !strings.Contains(res.Error, "anderen Gast") {
        t.Errorf("conflict result = %+v, want localized failure", res)
    }

    // Re-reserving under the same name is allowed.
    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/1/reserve", `{"name":"Anna"}`); rec.Code != http.StatusOK {
        t.Errorf("re-reserve Anna: status %d, want 200", rec.Code)
    }
}

func TestReserveValidation(t *testing.T) {
    e, _ := newTestApp(t)

    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/99/reserve", `{"name":"Anna"}`); rec.Code != http.StatusNotFound {
        t.Errorf("unknown table: status %d, want 404", rec.Code)
    }
    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/abc/reserve", `{"name":"Anna"}`); rec.Code != http.StatusBadRequest {
        t.Errorf("non-numeric table: status %d, want 400", rec.Code)
    }
    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/1/reserve", `{}`); rec.Code != http.StatusBadRequest {
        t.Errorf("missing name: status %d, want 400", rec.Code)
    }
}

func TestCreateOrderReserveOnly(t *testing.T) {
    e, st := newTestApp(t)

    rec := doJSON(t, e, http.MethodPost, "/v1/tables/2/order", `{"name":"Anna"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("reserve-only order call: status %d, body %s", rec.Code, rec.Body.String())
    }
    if res := decodeResult(t, rec); res.Order != nil {
        t.Error("reserve-only call returned an order")
    }
    table, err := st.Table(2)
    if err != nil {
        t.Fatal(err)
    }
    if table.Status != model.TableReserved || table.Order != nil {
        t.Errorf("table after reserve-only = %+v, want RESERVED without order", table)
    }
}

func TestCreateOrderErrors(t *testing.T) {
    e, _ := newTestApp(t)

    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/2/order", `{"name":"Anna","item_id":"404"}`); rec.Code != http.StatusNotFound {
        t.Errorf("unknown item: status %d, want 404", rec.Code)
    }

    doJSON(t, e, http.MethodPost, "/v1/tables/2/reserve", `{"name":"Anna"}`)
    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/2/order", `{"name":"Bruno","item_id":"1"}`); rec.Code != http.StatusConflict {
        t.Errorf("order on another guest's table: status %d, want 409", rec.Code)
    }
}

func TestUpdateStatusWithoutOrder(t *testing.T) {
    e, _ := newTestApp(t)
    rec := doJSON(t, e, http.MethodPatch, "/v1/tables/5/order/status", `{"status":"ORDER_SERVED"}`)
    if rec.Code != http.StatusNotFound {
        t.Errorf("status update without order: status %d, want 404", rec.Code)
    }
}

func TestUpdateStatusRejectsIdle(t *testing.T) {
    e, _ := newTestApp(t)
    doJSON(t, e, http.MethodPost, "/v1/tables/5/order", `{"name":"Anna","item_id":"1"}`)
    rec := doJSON(t, e, http.MethodPatch, "/v1/tables/5/order/status", `{"status":"IDLE"}`)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("IDLE status update: status %d, want 400", rec.Code)
    }
}

func TestQuerySurface(t *testing.T) {
    e, _ := newTestApp(t)

    rec := doJSON(t, e, http.MethodGet, "/v1/tables", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("list tables: status %d", rec.Code)
    }
    var entries []model.TableEntry
    if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
        t.Fatalf("decode table list: %v", err)
    }
    if len(entries) != 10 {
        t.Fatalf("table list has %d entries, want 10", len(entries))
    }
    if entries[0].TableID != 1 || entries[9].TableID != 10 {
        t.Errorf("table list not ordered by table number: first=%d last=%d", entries[0].TableID, entries[9].TableID)
    }

    if rec := doJSON(t, e, http.MethodGet, "/v1/tables/42", ""); rec.Code != http.StatusNotFound {
        t.Errorf("get unknown table: status %d, want 404", rec.Code)
    }

    rec = doJSON(t, e, http.MethodGet, "/v1/menu", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("get menu: status %d", rec.Code)
    }
    var items []model.MenuItem
    if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
        t.Fatalf("decode menu: %v", err)
    }
    if len(items) != 2 || items[1].Name != "Sauerbraten" {
        t.Errorf("menu = %+v, want the two fixture dishes", items)
    }
}

func TestStreamPreconditions(t *testing.T) {
    e, _ := newTestApp(t)

    cases := []struct {
        name   string
        target string
        want   int
    }{
        {"missing param", "/v1/order-status", http.StatusBadRequest},
        {"non-numeric", "/v1/order-status?tableId=abc", http.StatusBadRequest},
        {"unknown table", "/v1/order-status?tableId=99", http.StatusBadRequest},
        {"no order", "/v1/order-status?tableId=3", http.StatusNotFound},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec := doJSON(t, e, http.MethodGet, tc.target, "")
            if rec.Code != tc.want {
                t.Errorf("status %d, want %d", rec.Code, tc.want)
            }
        })
    }
}

// readEvent reads lines until the next SSE data frame, skipping ping
// comments, and decodes its order payload.
func readEvent(t *testing.T, r *bufio.Reader) model.Order {
    t.Helper()
    deadline := time.Now().Add(5 * time.Second)
    for time.Now().Before(deadline) {
        line, err := r.ReadString('\n')
        if err != nil {
            t.Fatalf("read stream: %v", err)
        }
        line = strings.TrimRight(line, "\n")
        if strings.HasPrefix(line, "data: ") {
            var o model.Order
            if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &o); err != nil {
                t.Fatalf("decode stream payload %q: %v", line, err)
            }
            return o
        }
        // blank separators and ": ping" heartbeats fall through
    }
    t.Fatal("no data frame before deadline")
    return model.Order{}
}

// TestGuestFlowEndToEnd walks the whole lifecycle of table 3: reserve,
// order, live status updates over the stream, free.
func TestGuestFlowEndToEnd(t *testing.T) {
    e, st := newTestApp(t)
    srv := httptest.NewServer(e)
    defer srv.Close()

    table, err := st.Table(3)
    if err != nil {
        t.Fatal(err)
    }
    if table.Status != model.TableFree {
        t.Fatalf("table 3 starts %s, want FREE", table.Status)
    }

    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/3/reserve", `{"name":"Anna"}`); rec.Code != http.StatusOK {
        t.Fatalf("reserve: status %d", rec.Code)
    }
    table, _ = st.Table(3)
    if table.Status != model.TableReserved || table.ReservedBy == nil || *table.ReservedBy != "Anna" {
        t.Fatalf("after reserve: %+v, want RESERVED by Anna", table)
    }

    rec := doJSON(t, e, http.MethodPost, "/v1/tables/3/order", `{"name":"Anna","item_id":"2"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("create order: status %d, body %s", rec.Code, rec.Body.String())
    }
    created := decodeResult(t, rec)
    if created.Order == nil || created.Order.Status != model.OrderReceived || created.Order.Item.Name != "Sauerbraten" {
        t.Fatalf("created order = %+v, want ORDER_RECEIVED Sauerbraten", created.Order)
    }

    // Open the live stream; the first frame is the current snapshot.
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/order-status?tableId=3", nil)
    if err != nil {
        t.Fatal(err)
    }
    resp, err := http.DefaultClient.Do(req)
    if err != nil {
        t.Fatalf("open stream: %v", err)
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("stream status %d, want 200", resp.StatusCode)
    }
    if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
        t.Fatalf("stream content type %q", ct)
    }

    reader := bufio.NewReader(resp.Body)
    first := readEvent(t, reader)
    if first.Status != model.OrderReceived || first.Item.Name != "Sauerbraten" {
        t.Fatalf("first frame = %+v, want the ORDER_RECEIVED snapshot", first)
    }

    // Wait until the stream handler registered its subscription, then
    // push a status change and expect it on the stream.
    waitFor(t, func() bool { return st.Subscribers(3) == 1 })
    if rec := doJSON(t, e, http.MethodPatch, "/v1/tables/3/order/status", `{"status":"ORDER_SERVED"}`); rec.Code != http.StatusOK {
        t.Fatalf("update status: status %d", rec.Code)
    }
    second := readEvent(t, reader)
    if second.Status != model.OrderServed {
        t.Fatalf("second frame status = %s, want ORDER_SERVED", second.Status)
    }

    if rec := doJSON(t, e, http.MethodPost, "/v1/tables/3/free", ""); rec.Code != http.StatusOK {
        t.Fatalf("free: status %d", rec.Code)
    }
    table, _ = st.Table(3)
    if table.Status != model.TableFree || table.Order != nil || table.ReservedBy != nil {
        t.Fatalf("after free: %+v, want an empty FREE table", table)
    }

    // Disconnecting tears the subscription down.
    cancel()
    waitFor(t, func() bool { return st.Subscribers(3) == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
    t.Helper()
    deadline := time.Now().Add(5 * time.Second)
    for time.Now().Before(deadline) {
        if cond() {
            return
        }
        time.Sleep(10 * time.Millisecond)
    }
    t.Fatal("condition not reached before deadline")
}
