package logging_test

import (
	"log/slog"
	"os"

	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/logging"
)

// Each subsystem gets its own bracketed prefix:
//
//	[INFO] [service] [14:02:11] search finished rooms=2 adults=4 children=3 feasible=true total_price=540
func ExampleNewLoggerWithSystem() {
	cfg := config.LoggingConfig{Level: "info", Format: "text"}

	serviceLogger := logging.NewLoggerWithSystem(cfg, "service")
	apiLogger := logging.NewLoggerWithSystem(cfg, "api")

	serviceLogger.Info("search finished", "rooms", 2, "adults", 4, "children", 3, "feasible", true, "total_price", 540.0)
	serviceLogger.Info("session created", "session_id", "3f0c9a4e", "rooms", 2)
	apiLogger.Warn("rate limit exceeded", "ip", "203.0.113.9")
	serviceLogger.Error("edit rejected", "room", 0, "error", "room would hold children without an adult")

	// Debug lines only show when the level allows them.
	debugLogger := slog.New(logging.NewMavenHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).With("system", "editor")
	debugLogger.Debug("bounds recomputed", "room", 1, "max_adult", 3, "max_child", 0)
}
