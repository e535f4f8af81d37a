package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/Riyasinha-01/Voyage/docs"
	"github.com/Riyasinha-01/Voyage/internal/api/chat"
	"github.com/Riyasinha-01/Voyage/internal/api/destinations"
	"github.com/Riyasinha-01/Voyage/internal/api/images"
	"github.com/Riyasinha-01/Voyage/internal/api/planner"
	"github.com/Riyasinha-01/Voyage/internal/api/structurer"
)

// Config contains dependencies needed for the router setup
type Config struct {
	StructurerHandler      *structurer.Handler
	DestinationsHandler    *destinations.Handler
	ImagesHandler          *images.Handler
	PlannerHandler         *planner.Handler
	ChatHandler            *chat.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/render", cfg.StructurerHandler.Render)

			r.Post("/destinations/extract", cfg.DestinationsHandler.Extract)
			r.Get("/destinations/{name}/images", cfg.ImagesHandler.Images)

			r.Route("/strips", func(r chi.Router) {
				r.Post("/", cfg.ImagesHandler.CreateStrip)
				r.Get("/{stripID}", cfg.ImagesHandler.GetStrip)
				r.Put("/{stripID}", cfg.ImagesHandler.ReplaceStrip)
				r.Delete("/{stripID}", cfg.ImagesHandler.DeleteStrip)
				r.Post("/{stripID}/cells/{name}/events", cfg.ImagesHandler.CellEvent)
			})

			r.Post("/planner/prompt", cfg.PlannerHandler.Prompt)
			r.Get("/planner/suggestions", cfg.PlannerHandler.Suggestions)
		})

		// --- Protected routes ---
		// Routes under this group require a bearer token
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/chat/message", cfg.ChatHandler.SendMessage)
			r.Get("/chat/list", cfg.ChatHandler.ListChats)
			r.Get("/chat/history/{chatID}", cfg.ChatHandler.History)
			r.Delete("/chat/{chatID}", cfg.ChatHandler.DeleteChat)
			r.Get("/session", cfg.ChatHandler.Session)
		})
	})

	return r
}
