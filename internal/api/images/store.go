package images

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

var (
	ErrStripNotFound = errors.New("strip not found")
	ErrCellNotFound  = errors.New("destination not found in strip")
)

const DefaultStripTTL = 30 * time.Minute

// StripStore keeps live strips in memory. An idle strip expires after the
// TTL and is closed on eviction.
type StripStore struct {
	strips        *cache.Cache
	extractor     NameExtractor
	lookup        Lookup
	maxConcurrent int
	logger        *slog.Logger
}

func NewStripStore(extractor NameExtractor, lookup Lookup, ttl time.Duration, maxConcurrent int, logger *slog.Logger) *StripStore {
	if ttl <= 0 {
		ttl = DefaultStripTTL
	}
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, v interface{}) {
		if strip, ok := v.(*Strip); ok {
			strip.Close()
			logger.Debug("Strip evicted", slog.String("strip_id", id))
		}
	})
	return &StripStore{
		strips:        c,
		extractor:     extractor,
		lookup:        lookup,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Create starts a strip for text.
func (st *StripStore) Create(text string) (*Strip, types.StripSnapshot) {
	strip := NewStrip(uuid.NewString(), st.extractor, st.lookup, st.maxConcurrent, st.logger)
	st.strips.SetDefault(strip.ID(), strip)
	return strip, strip.Start(text)
}

// Get returns a live strip and refreshes its expiry.
func (st *StripStore) Get(id string) (*Strip, error) {
	v, found := st.strips.Get(id)
	if !found {
		return nil, ErrStripNotFound
	}
	strip := v.(*Strip)
	st.strips.SetDefault(id, strip)
	return strip, nil
}

func (st *StripStore) Replace(id, text string) (types.StripSnapshot, error) {
	strip, err := st.Get(id)
	if err != nil {
		return types.StripSnapshot{}, err
	}
	return strip.Replace(text), nil
}

// Apply forwards a display event to one cell of a strip.
func (st *StripStore) Apply(id, name string, ev types.CellEvent) (types.ResolvedDestination, error) {
	strip, err := st.Get(id)
	if err != nil {
		return types.ResolvedDestination{}, err
	}
	cell, ok := strip.Cell(name)
	if !ok {
		return types.ResolvedDestination{}, ErrCellNotFound
	}
	return cell.Apply(ev), nil
}

// Delete tears the strip down. Eviction closes it.
func (st *StripStore) Delete(id string) error {
	if _, found := st.strips.Get(id); !found {
		return ErrStripNotFound
	}
	st.strips.Delete(id)
	return nil
}

func (st *StripStore) Len() int {
	return st.strips.ItemCount()
}

// Close tears down every live strip.
func (st *StripStore) Close() {
	for id := range st.strips.Items() {
		st.strips.Delete(id)
	}
}
