package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
	"github.com/eshaffer321/room-allocation/internal/scenario"
)

// RunSearch loads a scenario and prints its cheapest allocation.
func RunSearch(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, flags *SearchFlags) error {
	sc, err := scenario.Load(flags.Scenario)
	if err != nil {
		return err
	}

	svc := service.NewAllocationService(cfg, logger)
	defer svc.Stop()

	result, err := svc.Search(ctx, sc.Guest(), sc.Rooms())
	if err != nil {
		return err
	}

	logger.Debug("search complete",
		"scenario", flags.Scenario,
		"feasible", result.Feasible,
		"total_price", result.TotalPrice,
	)

	if flags.JSON {
		return PrintJSON(w, result)
	}

	PrintHeader(w, "search", sc.Guest(), len(sc.RoomList))
	PrintSearchResult(w, sc.Rooms(), result)
	return nil
}
