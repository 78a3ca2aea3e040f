package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
	"github.com/eshaffer321/room-allocation/internal/domain/editor"
	"github.com/eshaffer321/room-allocation/internal/scenario"
)

// PrintHeader prints the command header
func PrintHeader(w io.Writer, command string, guest allocator.Guest, rooms int) {
	fmt.Fprintf(w, "roomalloc: %s | Adults: %d | Children: %d | Rooms: %d\n\n",
		command, guest.Adult, guest.Child, rooms)
}

// PrintAllocations prints one row per room followed by the total.
func PrintAllocations(w io.Writer, rooms []allocator.Room, allocs []allocator.Allocation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tADULTS\tCHILDREN\tCAPACITY\tPRICE\tBOOKED\t")
	for i, a := range allocs {
		booked := "no"
		if a.Occupied() {
			booked = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%s\t\n",
			roomName(rooms, i), a.Adult, a.Child, a.Capacity, a.Price, booked)
	}
	_ = tw.Flush()

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Total: %.2f\n", allocator.TotalPrice(allocs))
}

// PrintSearchResult prints a search result, or a notice when no valid
// allocation exists.
func PrintSearchResult(w io.Writer, rooms []allocator.Room, result *allocator.Result) {
	if !result.Feasible {
		fmt.Fprintln(w, "No valid allocation: the party cannot be placed in these rooms.")
		return
	}
	PrintAllocations(w, rooms, result.Allocations)
}

// PrintEdit prints the outcome of one replayed edit.
func PrintEdit(w io.Writer, n int, rooms []allocator.Room, e scenario.Edit, err error) {
	status := "accepted"
	if err != nil {
		status = "rejected: " + err.Error()
	}
	fmt.Fprintf(w, "edit %d: %s %s=%d %s\n", n, roomName(rooms, e.Room), e.Kind, e.Value, status)
}

// PrintUnassigned prints guests not yet placed, if any.
func PrintUnassigned(w io.Writer, unassigned allocator.Guest) {
	if unassigned == (allocator.Guest{}) {
		fmt.Fprintln(w, "All guests placed.")
		return
	}
	fmt.Fprintf(w, "Unassigned: %d adults, %d children\n", unassigned.Adult, unassigned.Child)
}

// PrintRooms prints each room's occupancy and editable range.
func PrintRooms(w io.Writer, rooms []allocator.Room, summaries []editor.Summary) {
	for _, r := range summaries {
		fmt.Fprintf(w, "  %s: adults %d-%d, children %d-%d (%d/%d occupied)\n",
			roomName(rooms, r.Index), r.Bounds.MinAdult, r.Bounds.MaxAdult,
			r.Bounds.MinChild, r.Bounds.MaxChild, r.Occupants, r.Capacity)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func roomName(rooms []allocator.Room, i int) string {
	if i >= 0 && i < len(rooms) && rooms[i].Name != "" {
		return rooms[i].Name
	}
	return fmt.Sprintf("Room %d", i+1)
}
