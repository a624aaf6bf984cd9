package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses duration-valued settings
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Required variables are
// enforced by must(); the rest fall back to defaults that match the
// original restaurant deployment (10 tables, 30s heartbeat).
type Config struct {
    Env               string        // application environment (e.g. "dev", "prod")
    Port              string        // HTTP port to listen on
    TableCount        int           // number of pre-registered tables, numbered from 1
    MenuPath          string        // path to the static menu catalog JSON
    HeartbeatInterval time.Duration // keep-alive cadence on live-update streams
    KitchenLog        bool          // start the background kitchen-log consumer
}

// Load reads configuration values from environment variables and
// returns a Config.  Missing required values cause the program to
// exit with a fatal log message.
func Load() Config {
    return Config{
        Env:               must("APP_ENV"),  // environment (dev/test/prod)
        Port:              must("APP_PORT"), // port to bind the HTTP server
        TableCount:        envInt("TABLE_COUNT", 10),
        MenuPath:          envStr("MENU_PATH", "assets/menu.json"),
        HeartbeatInterval: time.Duration(envInt("SSE_HEARTBEAT_SEC", 30)) * time.Second,
        KitchenLog:        envBool("KITCHEN_LOG_ENABLED", false),
    }
}

// must retrieves the value of a required environment variable.  If
// the variable is unset or empty, the application logs a fatal error
// and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    switch v {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
