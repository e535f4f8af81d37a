package images

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
)

const (
	DefaultMaxImages    = 5
	DefaultStageTimeout = 6 * time.Second
)

type ResolverConfig struct {
	MaxImages    int
	StageTimeout time.Duration
	CacheTTL     time.Duration
}

// Resolver gathers image URLs for a destination by cascading through the
// stages of an ImageSource.
type Resolver struct {
	source  ImageSource
	cfg     ResolverConfig
	cache   *cache.Cache
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

type stage struct {
	name   string
	lookup func(ctx context.Context, title string) ([]string, error)
}

// NewResolver builds a resolver. m may be nil; a zero CacheTTL disables the
// result cache. MaxImages is clamped to DefaultMaxImages.
func NewResolver(source ImageSource, cfg ResolverConfig, logger *slog.Logger, m *metrics.AppMetrics) *Resolver {
	if cfg.MaxImages <= 0 || cfg.MaxImages > DefaultMaxImages {
		cfg.MaxImages = DefaultMaxImages
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = DefaultStageTimeout
	}
	r := &Resolver{
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
	if cfg.CacheTTL > 0 {
		r.cache = cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	}
	return r
}

// Resolve returns up to MaxImages distinct URLs in discovery order. It never
// fails: stage errors are logged and the cascade moves on. The cascade stops
// early once MaxImages URLs are known or ctx is done.
func (r *Resolver) Resolve(ctx context.Context, name string) []string {
	ctx, span := otel.Tracer("ImageResolver").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("destination.name", name))

	l := r.logger.With(slog.String("method", "Resolve"), slog.String("destination", name))

	name = strings.TrimSpace(name)
	if name == "" {
		span.SetStatus(codes.Ok, "Empty name")
		return []string{}
	}

	key := strings.ToLower(name)
	if r.cache != nil {
		if cached, found := r.cache.Get(key); found {
			if r.metrics != nil {
				r.metrics.ImageCacheHitsTotal.Add(ctx, 1)
			}
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return append([]string(nil), cached.([]string)...)
		}
	}

	stages := []stage{
		{name: "summary", lookup: r.source.Summary},
		{name: "pageimages", lookup: r.source.PageImages},
		{name: "mediafiles", lookup: r.source.MediaFiles},
	}

	var (
		urls []string
		errs *multierror.Error
	)
	for _, s := range stages {
		if len(urls) >= r.cfg.MaxImages || ctx.Err() != nil {
			break
		}
		found, err := r.runStage(ctx, s, name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		urls = lo.Uniq(append(urls, lo.Compact(found)...))
	}
	if len(urls) > r.cfg.MaxImages {
		urls = urls[:r.cfg.MaxImages]
	}

	stageErr := errs.ErrorOrNil()
	if stageErr != nil {
		l.WarnContext(ctx, "Image lookup stages failed", slog.Any("error", stageErr), slog.Int("images", len(urls)))
		span.RecordError(stageErr)
	}
	span.SetAttributes(attribute.Int("images.count", len(urls)))

	if len(urls) == 0 {
		span.SetStatus(codes.Error, "No images found")
		return []string{}
	}
	// partial lists from a cancelled or failing cascade are not cached
	if r.cache != nil && ctx.Err() == nil && stageErr == nil {
		r.cache.Set(key, append([]string(nil), urls...), cache.DefaultExpiration)
	}
	span.SetStatus(codes.Ok, "Images resolved")
	return urls
}

func (r *Resolver) runStage(ctx context.Context, s stage, name string) ([]string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, r.cfg.StageTimeout)
	defer cancel()

	start := time.Now()
	found, err := s.lookup(stageCtx, name)
	if r.metrics != nil {
		outcome := "hit"
		switch {
		case err != nil:
			outcome = "error"
		case len(found) == 0:
			outcome = "empty"
		}
		attrs := metric.WithAttributes(attribute.String("stage", s.name), attribute.String("outcome", outcome))
		r.metrics.ImageStageRequestsTotal.Add(ctx, 1, attrs)
		r.metrics.ImageStageDurationSeconds.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("stage", s.name)))
	}
	return found, err
}
