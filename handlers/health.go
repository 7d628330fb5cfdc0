package handlers

import (
	"net/http"
	"time"

	"github.com/Matloob11/AURA-AI-AGENT/app"
	"github.com/Matloob11/AURA-AI-AGENT/utils"
)

// HealthCheck returns a simple liveness check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := deps.Orchestrator.ConfigSnapshot()

		aiStatus := "ready"
		if len(snapshot.Stats) == 0 && !snapshot.LocalEnabled {
			aiStatus = "not_configured"
		}

		_ = utils.WriteOK(w, map[string]interface{}{
			"version":     "0.1.0",
			"environment": deps.Config.Environment,
			"ai":          aiStatus,
			"providers":   snapshot.Providers,
			"model":       snapshot.Model,
			"history":     snapshot.HistoryCount,
			"timestamp":   time.Now().UTC(),
		})
	}
}
