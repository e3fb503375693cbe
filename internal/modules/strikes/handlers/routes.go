package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all strike analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/strikes", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
		r.Post("/compare", h.HandleCompare)
		r.Get("/annual-returns", h.HandleAnnualReturns)
		r.Get("/config", h.HandleGetConfig)
	})
}
