package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eshaffer321/room-allocation/internal/cli"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/logging"
)

// CLI represents the main CLI application
type CLI struct {
	configFile string
	verbose    bool
}

func main() {
	app := &CLI{}

	// Global flags
	flag.StringVar(&app.configFile, "config", "", "Configuration file path")
	flag.BoolVar(&app.verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := args[1:]

	cfg, err := loadConfig(app.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if app.verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "roomalloc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch subcommand {
	case "search":
		err = handleSearch(ctx, subArgs, cfg, logger)
	case "edit":
		err = handleEdit(ctx, subArgs, cfg, logger)
	case "serve":
		err = handleServe(subArgs, cfg)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("command failed", "command", subcommand, "error", err)
		os.Exit(1)
	}
}

func handleSearch(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger) error {
	flags, err := cli.ParseSearchFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	return cli.RunSearch(ctx, os.Stdout, cfg, logger, flags)
}

func handleEdit(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger) error {
	flags, err := cli.ParseEditFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	_, err = cli.RunEdit(ctx, os.Stdout, cfg, logger, flags)
	return err
}

func handleServe(args []string, cfg *config.Config) error {
	flags, err := cli.ParseServeFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	return cli.RunServe(cfg, flags)
}

func printUsage() {
	fmt.Println("roomalloc - cheapest room allocation for a party of guests")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  roomalloc [options] <command> [command options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search -scenario file.yaml [-json]   Print the cheapest allocation")
	fmt.Println("  edit   -scenario file.yaml [-json]   Replay the scenario's edits on it")
	fmt.Println("  serve  [-port N] [-verbose]          Run the HTTP API")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  -config string      Configuration file path (default: config.yaml if present)")
	fmt.Println("  -verbose            Enable verbose logging")
}

// loadConfig reads the given file, or config.yaml / config.yml when present,
// and falls back to the environment.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile == "" {
		for _, candidate := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				configFile = candidate
				break
			}
		}
	}

	if configFile == "" {
		return config.LoadFromEnv(), nil
	}
	return config.Load(configFile)
}
