package middleware

import (
    "bytes"
    "context"
    "encoding/json"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/lberndt/gasthaus/internal/config"
)

// cachedResponse is the stored form of a cacheable response.  Only
// the content type is preserved besides the body; the cached
// endpoints set no other meaningful headers.
type cachedResponse struct {
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// captureWriter captures the response body while forwarding it to the
// client, so a miss can be stored after the handler ran.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    cw.buf.Write(b)
    return cw.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses of the routes it
// is applied to.  It is meant for immutable payloads such as the menu
// catalog; mutable state like table snapshots must never go through
// it.  With no Redis client the middleware is a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cfg.Prefix + ":" + c.Path()

            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var stored cachedResponse
                if err := json.Unmarshal(raw, &stored); err == nil {
                    c.Response().Header().Set("X-Cache", "HIT")
                    ct := stored.ContentType
                    if ct == "" {
                        ct = echo.MIMEApplicationJSON
                    }
                    return c.Blob(http.StatusOK, ct, stored.Body)
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && (cfg.MaxBodyBytes <= 0 || cw.buf.Len() <= cfg.MaxBodyBytes) {
                ct := c.Response().Header().Get(echo.HeaderContentType)
                stored := cachedResponse{
                    ContentType: strings.TrimSpace(ct),
                    Body:        cw.buf.Bytes(),
                }
                if raw, err := json.Marshal(stored); err == nil {
                    _ = rdb.SetEx(context.Background(), key, raw, cfg.TTL).Err()
                }
            }
            return nil
        }
    }
}
