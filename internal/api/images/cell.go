package images

import (
	"context"
	"sync"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

// Lookup resolves a destination name to image URLs. It must not fail.
type Lookup interface {
	Resolve(ctx context.Context, name string) []string
}

var _ Lookup = (*Resolver)(nil)

// Cell is the display state of one destination. Results of a resolution task
// are committed only while the generation the task started with is current;
// Close and every new Load bump it.
type Cell struct {
	mu         sync.Mutex
	name       string
	images     []string
	status     types.ResolutionStatus
	current    int
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func NewCell(name string) *Cell {
	return &Cell{name: name, status: types.StatusLoading}
}

func (c *Cell) Name() string {
	return c.name
}

// Load runs one resolution task and reports whether its result was
// committed. A result that arrives after Close or a newer Load is dropped.
func (c *Cell) Load(parent context.Context, lookup Lookup) bool {
	ctx, gen, ok := c.begin(parent)
	if !ok {
		return false
	}
	urls := lookup.Resolve(ctx, c.name)
	return c.settle(gen, urls)
}

func (c *Cell) begin(parent context.Context) (context.Context, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, 0, false
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.generation++
	c.cancel = cancel
	c.status = types.StatusLoading
	c.images = nil
	c.current = 0
	return ctx, c.generation, true
}

func (c *Cell) settle(gen uint64, urls []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.images = append([]string(nil), urls...)
	c.current = 0
	if len(c.images) == 0 {
		c.status = types.StatusError
	} else {
		c.status = types.StatusReady
	}
	return true
}

// ImageFailed records that the image at index could not be displayed. Only
// a failure of the image on display advances the cell; once every image has
// failed the cell turns to Error.
func (c *Cell) ImageFailed(index int) types.ResolvedDestination {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == types.StatusReady && index == c.current {
		c.current++
		if c.current >= len(c.images) {
			c.status = types.StatusError
		}
	}
	return c.snapshotLocked()
}

func (c *Cell) Next() types.ResolvedDestination {
	return c.move(func(cur, n int) int { return (cur + 1) % n })
}

func (c *Cell) Prev() types.ResolvedDestination {
	return c.move(func(cur, n int) int { return (cur - 1 + n) % n })
}

// Select displays image i, wrapped into range.
func (c *Cell) Select(i int) types.ResolvedDestination {
	return c.move(func(_, n int) int { return ((i % n) + n) % n })
}

func (c *Cell) move(step func(cur, n int) int) types.ResolvedDestination {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.images); n > 0 {
		c.current = step(c.current%n, n)
	}
	return c.snapshotLocked()
}

// Apply dispatches a display-side event.
func (c *Cell) Apply(ev types.CellEvent) types.ResolvedDestination {
	switch ev.Type {
	case types.CellEventImageError:
		return c.ImageFailed(ev.Index)
	case types.CellEventNext:
		return c.Next()
	case types.CellEventPrev:
		return c.Prev()
	case types.CellEventSelect:
		return c.Select(ev.Index)
	}
	return c.Snapshot()
}

// Close cancels any running task and discards its eventual result.
func (c *Cell) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Cell) Snapshot() types.ResolvedDestination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cell) snapshotLocked() types.ResolvedDestination {
	return types.ResolvedDestination{
		Name:         c.name,
		Images:       append([]string{}, c.images...),
		Status:       c.status,
		CurrentIndex: c.current,
	}
}
