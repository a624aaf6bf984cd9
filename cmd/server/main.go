package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/lberndt/gasthaus/internal/config"
    "github.com/lberndt/gasthaus/internal/handler"
    "github.com/lberndt/gasthaus/internal/menu"
    "github.com/lberndt/gasthaus/internal/middleware"
    "github.com/lberndt/gasthaus/internal/queue"
    "github.com/lberndt/gasthaus/internal/router"
    "github.com/lberndt/gasthaus/internal/store"
)

func main() {
    // Load .env if present; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    catalog, err := menu.Load(cfg.MenuPath)
    if err != nil {
        log.Fatalf("load menu: %v", err)
    }
    log.Printf("menu loaded: %d dishes from %s", catalog.Len(), cfg.MenuPath)

    // The store is the single long-lived state instance; everything
    // below receives it by reference.
    st := store.New(cfg.TableCount, catalog)

    // Redis carries rate limiting and menu caching only.  A nil
    // client disables both.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable, rate limiting and menu cache disabled")
    }
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    menuCache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

    if cfg.KitchenLog {
        go func() {
            if err := queue.StartKitchenConsumer(); err != nil {
                log.Printf("kitchen-consumer stopped: %v", err)
            }
        }()
    }

    e := echo.New()
    e.HideBanner = true
    router.RegisterRoutes(e)
    router.RegisterActions(e, handler.NewGuestHandler(st), handler.NewAdminHandler(st), limiter)
    router.RegisterPublic(e, handler.NewPublicHandler(st, catalog), menuCache)
    router.RegisterStream(e, handler.NewStreamHandler(st, cfg.HeartbeatInterval))

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, tables=%d)", addr, cfg.Env, cfg.TableCount)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
