package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Matloob11/AURA-AI-AGENT/app"
	"github.com/Matloob11/AURA-AI-AGENT/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for the local desktop client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "app://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	chatHandler := handlers.NewChatHandler(deps.Orchestrator, deps.Logger)
	aiHandler := handlers.NewAIHandler(deps.Orchestrator, deps.Logger)

	// Health and status endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/status", handlers.StatusHandler(deps))

	if deps.PromReg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.PromReg, promhttp.HandlerOpts{}))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.HandleChat)

		r.Route("/ai", func(r chi.Router) {
			r.Get("/config", aiHandler.HandleConfig)
			r.Get("/history", aiHandler.HandleHistory)
			r.Post("/clear-history", aiHandler.HandleClearHistory)
			r.Post("/settings", aiHandler.HandleUpdateSettings)
			r.Post("/analyze-intent", aiHandler.HandleAnalyzeIntent)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
