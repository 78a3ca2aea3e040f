package service

import (
	"strconv"
	"strings"
	"sync"

	"github.com/eshaffer321/room-allocation/internal/domain/allocator"
)

// resultCache is a bounded in-memory cache of search results. When full, the
// oldest entry is evicted.
type resultCache struct {
	mu    sync.RWMutex
	limit int
	store map[string]*allocator.Result
	order []string
}

func newResultCache(limit int) *resultCache {
	return &resultCache{
		limit: limit,
		store: make(map[string]*allocator.Result),
	}
}

// Get retrieves a copy of a cached result
func (c *resultCache) Get(key string) (*allocator.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, found := c.store[key]
	if !found {
		return nil, false
	}
	return copyResult(r), true
}

// Set stores a copy of result
func (c *resultCache) Set(key string, result *allocator.Result) {
	if c.limit <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists {
		for len(c.order) >= c.limit {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.store, oldest)
		}
		c.order = append(c.order, key)
	}
	c.store[key] = copyResult(result)
}

// Size returns the number of cached entries
func (c *resultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.store)
}

// searchKey identifies a search by everything that affects its result. Room
// names are display-only and left out.
func searchKey(guest allocator.Guest, rooms []allocator.Room) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(guest.Adult))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(guest.Child))
	for _, r := range rooms {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(r.RoomPrice, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.AdultPrice, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.ChildPrice, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.Capacity))
	}
	return b.String()
}

func copyResult(r *allocator.Result) *allocator.Result {
	out := *r
	out.Allocations = append([]allocator.Allocation(nil), r.Allocations...)
	return &out
}
