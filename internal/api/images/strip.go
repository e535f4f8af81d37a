package images

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

// NameExtractor picks destination names out of a reply.
type NameExtractor interface {
	Extract(text string) []string
}

const DefaultMaxConcurrent = 4

// Strip owns the destination cells shown under one assistant message.
type Strip struct {
	id            string
	extractor     NameExtractor
	lookup        Lookup
	maxConcurrent int
	logger        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup

	mu     sync.Mutex
	order  []string
	cells  map[string]*Cell
	closed bool
}

func NewStrip(id string, extractor NameExtractor, lookup Lookup, maxConcurrent int, logger *slog.Logger) *Strip {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Strip{
		id:            id,
		extractor:     extractor,
		lookup:        lookup,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		cells:         make(map[string]*Cell),
	}
}

func (s *Strip) ID() string {
	return s.id
}

// Start extracts the candidates of text and launches their resolution.
func (s *Strip) Start(text string) types.StripSnapshot {
	return s.Replace(text)
}

// Replace re-extracts candidates from text. Cells whose name survives keep
// their state; dropped cells are closed so their late results are ignored;
// new names get fresh cells that start resolving.
func (s *Strip) Replace(text string) types.StripSnapshot {
	names := s.extractor.Extract(text)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.Snapshot()
	}

	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	for name, cell := range s.cells {
		if _, ok := keep[name]; !ok {
			cell.Close()
			delete(s.cells, name)
		}
	}

	var fresh []*Cell
	for _, n := range names {
		if _, ok := s.cells[n]; ok {
			continue
		}
		cell := NewCell(n)
		s.cells[n] = cell
		fresh = append(fresh, cell)
	}
	s.order = names
	s.mu.Unlock()

	s.launch(fresh)
	s.logger.Debug("Strip candidates updated",
		slog.String("strip_id", s.id),
		slog.Any("destinations", names),
		slog.Int("new_cells", len(fresh)))
	return s.Snapshot()
}

// launch resolves cells in the background, at most maxConcurrent at a time.
// Stages run one after another inside each task.
func (s *Strip) launch(cells []*Cell) {
	if len(cells) == 0 {
		return
	}
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		var g errgroup.Group
		g.SetLimit(s.maxConcurrent)
		for _, cell := range cells {
			g.Go(func() error {
				if !cell.Load(s.ctx, s.lookup) {
					s.logger.Debug("Discarded stale image result",
						slog.String("strip_id", s.id),
						slog.String("destination", cell.Name()))
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Cell returns the cell displaying name.
func (s *Strip) Cell(name string) (*Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[name]
	return c, ok
}

func (s *Strip) Snapshot() types.StripSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := types.StripSnapshot{ID: s.id, Cells: make([]types.ResolvedDestination, 0, len(s.order))}
	for _, name := range s.order {
		if c, ok := s.cells[name]; ok {
			snap.Cells = append(snap.Cells, c.Snapshot())
		}
	}
	return snap
}

// Wait blocks until every launched task has settled or been discarded.
func (s *Strip) Wait() {
	s.tasks.Wait()
}

// Close tears down every cell. It does not wait for running tasks.
func (s *Strip) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	for _, c := range s.cells {
		c.Close()
	}
	s.order = nil
}
