package container

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
	"github.com/Riyasinha-01/Voyage/config"
	"github.com/Riyasinha-01/Voyage/internal/api/chat"
	"github.com/Riyasinha-01/Voyage/internal/api/destinations"
	"github.com/Riyasinha-01/Voyage/internal/api/images"
	"github.com/Riyasinha-01/Voyage/internal/api/planner"
	"github.com/Riyasinha-01/Voyage/internal/api/structurer"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.AppMetrics

	Extractor   *destinations.Extractor
	ImageSource images.ImageSource
	Resolver    *images.Resolver
	Strips      *images.StripStore
	Backend     chat.BackendClient
	ChatService chat.Service

	StructurerHandler   *structurer.Handler
	DestinationsHandler *destinations.Handler
	ImagesHandler       *images.Handler
	ChatHandler         *chat.Handler
	PlannerHandler      *planner.Handler
}

// NewContainer initializes and returns a new dependency container.
// metrics.InitAppMetrics must have run.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	m := metrics.Get()

	extractor := NewExtractor(cfg.Extractor)

	source, resolver := NewResolver(cfg.Wiki, logger, m)
	strips := images.NewStripStore(extractor, resolver, cfg.Strips.TTL, cfg.Strips.MaxConcurrent, logger)

	backend := chat.NewHTTPBackendClient(cfg.ChatBackend.BaseURL, cfg.ChatBackend.Timeout, logger)
	chatService := chat.NewServiceImpl(backend, extractor, logger, m)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Metrics:     m,
		Extractor:   extractor,
		ImageSource: source,
		Resolver:    resolver,
		Strips:      strips,
		Backend:     backend,
		ChatService: chatService,

		StructurerHandler:   structurer.NewHandler(logger),
		DestinationsHandler: destinations.NewHandler(logger, extractor, m),
		ImagesHandler:       images.NewHandler(logger, resolver, strips),
		ChatHandler:         chat.NewHandler(chatService, logger),
		PlannerHandler:      planner.NewHandler(logger),
	}, nil
}

// NewExtractor builds an extractor from its config section. Each zero weight
// falls back to its default.
func NewExtractor(cfg config.ExtractorConfig) *destinations.Extractor {
	d := destinations.DefaultWeights
	w := destinations.Weights{
		VerbPhrase:  lo.CoalesceOrEmpty(cfg.Weights.VerbPhrase, d.VerbPhrase),
		Preposition: lo.CoalesceOrEmpty(cfg.Weights.Preposition, d.Preposition),
		Bold:        lo.CoalesceOrEmpty(cfg.Weights.Bold, d.Bold),
		List:        lo.CoalesceOrEmpty(cfg.Weights.List, d.List),
		KeyValue:    lo.CoalesceOrEmpty(cfg.Weights.KeyValue, d.KeyValue),
	}
	return destinations.NewExtractor(
		destinations.WithWeights(w),
		destinations.WithMaxResults(cfg.MaxResults),
		destinations.WithStopWords(cfg.StopWords...),
		destinations.WithLabelStopWords(cfg.LabelStopWords...),
	)
}

// NewResolver builds the encyclopedia client and the image cascade on top of
// it. m may be nil.
func NewResolver(cfg config.WikiConfig, logger *slog.Logger, m *metrics.AppMetrics) (images.ImageSource, *images.Resolver) {
	source := images.NewWikiClient(images.WikiConfig{
		RestBaseURL:       cfg.RestBaseURL,
		ActionBaseURL:     cfg.ActionBaseURL,
		UserAgent:         cfg.UserAgent,
		ThumbnailWidth:    cfg.ThumbnailWidth,
		UpscaleWidth:      cfg.UpscaleWidth,
		MaxMediaFiles:     cfg.MaxMediaFiles,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		HTTPTimeout:       cfg.StageTimeout,
	}, logger)
	resolver := images.NewResolver(source, images.ResolverConfig{
		MaxImages:    cfg.MaxImages,
		StageTimeout: cfg.StageTimeout,
		CacheTTL:     cfg.CacheTTL,
	}, logger, m)
	return source, resolver
}

// Close stops background work.
func (c *Container) Close() {
	c.Strips.Close()
	c.Logger.Info("Container closed")
}
