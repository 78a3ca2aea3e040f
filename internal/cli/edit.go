package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/eshaffer321/room-allocation/internal/api/dto"
	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
	"github.com/eshaffer321/room-allocation/internal/scenario"
)

// EditSummary counts the outcome of a replay.
type EditSummary struct {
	Accepted int
	Rejected int
	Final    *service.SessionSnapshot
}

// RunEdit opens an editing session on a scenario's cheapest allocation and
// replays the scenario's edits against it. Rejected edits are reported and
// skipped; they never abort the replay.
func RunEdit(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, flags *EditFlags) (*EditSummary, error) {
	sc, err := scenario.Load(flags.Scenario)
	if err != nil {
		return nil, err
	}

	svc := service.NewAllocationService(cfg, logger)
	defer svc.Stop()

	snap, err := svc.CreateSession(ctx, sc.Guest(), sc.Rooms())
	if err != nil {
		return nil, err
	}

	rooms := sc.Rooms()
	quiet := flags.JSON

	if !quiet {
		PrintHeader(w, "edit", sc.Guest(), len(rooms))
		if !snap.Feasible {
			fmt.Fprintln(w, "No valid allocation; starting from empty rooms.")
		}
		PrintAllocations(w, rooms, snap.Allocations)
		fmt.Fprintln(w)
	}

	summary := &EditSummary{Final: snap}
	for i, e := range sc.Edits() {
		// Parse already checked the kind.
		kind, _ := editor.ParseKind(e.Kind)

		next, err := svc.UpdateOccupancy(snap.ID, e.Room, kind, e.Value)
		if err != nil {
			summary.Rejected++
			logger.Debug("edit rejected", "edit", i+1, "error", err)
		} else {
			summary.Accepted++
			summary.Final = next
		}
		if !quiet {
			PrintEdit(w, i+1, rooms, e, err)
		}
	}

	if quiet {
		return summary, PrintJSON(w, dto.NewSessionResponse(summary.Final))
	}

	roomSummaries, err := svc.RoomSummaries(snap.ID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w)
	PrintAllocations(w, rooms, summary.Final.Allocations)
	PrintUnassigned(w, summary.Final.Unassigned)
	fmt.Fprintln(w, "Editable ranges:")
	PrintRooms(w, rooms, roomSummaries)
	return summary, nil
}
