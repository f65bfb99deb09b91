package api

import (
	"net/http"

	"chameleon-scheduler/internal/api/handlers"
	"chameleon-scheduler/internal/generator"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(gen *generator.Generator) http.Handler {
	mux := http.NewServeMux()

	scheduleHandler := handlers.NewScheduleHandler(gen)

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/terminals", scheduleHandler.Terminals)
	mux.HandleFunc("/schedule", scheduleHandler.Get)
	mux.HandleFunc("/schedule/step", scheduleHandler.Step)
	mux.HandleFunc("/schedule/reset", scheduleHandler.Reset)

	return loggingMiddleware(mux)
}
