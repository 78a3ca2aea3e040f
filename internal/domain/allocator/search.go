package allocator

// searcher carries the state of one exhaustive search.
type searcher struct {
	rooms []Room

	// current is the allocation being built. Entry i is overwritten while
	// room i is enumerated and restored from initial afterwards.
	current []Allocation
	initial []Allocation

	best      []Allocation
	bestPrice float64
	found     bool
}

// Search returns the cheapest valid distribution of guest over rooms.
//
// Every distribution that respects capacity and keeps children with an adult
// is enumerated. Rooms are visited in index order and occupancies in
// ascending order (adults first, then children); among equally priced
// distributions the first one found is kept, so the result is deterministic.
//
// The search is exhaustive and its cost grows combinatorially with the number
// of rooms and their capacity. Callers are expected to bound the input.
//
// When no valid distribution exists the result is not an error: Feasible is
// false and every room carries its empty default allocation.
func Search(guest Guest, rooms []Room) (*Result, error) {
	if err := Validate(guest, rooms); err != nil {
		return nil, err
	}

	s := &searcher{
		rooms:   rooms,
		current: Empty(rooms),
		initial: Empty(rooms),
	}
	s.search(0, guest.Adult, guest.Child, 0)

	if !s.found {
		return &Result{
			Allocations: Empty(rooms),
			Feasible:    false,
		}, nil
	}

	return &Result{
		Allocations: s.best,
		TotalPrice:  TotalPrice(s.best),
		Feasible:    true,
	}, nil
}

func (s *searcher) search(index, adults, children int, price float64) {
	if adults == 0 && children == 0 {
		if !IsValid(s.current) {
			return
		}
		if !s.found || price < s.bestPrice {
			s.found = true
			s.bestPrice = price
			s.best = append(s.best[:0], s.current...)
		}
		return
	}

	// Rooms before index are frozen; skipping a room leaves it unbooked.
	for i := index; i < len(s.rooms); i++ {
		room := s.rooms[i]

		for a := 0; a <= min(adults, room.Capacity); a++ {
			for c := 0; c <= min(children, room.Capacity-a); c++ {
				if c > 0 && a == 0 {
					continue
				}

				p := Price(room, a, c)
				s.current[i] = Allocation{
					Adult:    a,
					Child:    c,
					Price:    p,
					Capacity: room.Capacity,
				}
				s.search(i+1, adults-a, children-c, price+p)
			}
		}

		s.current[i] = s.initial[i]
	}
}
