package server

import (
	"net/http"

	"github.com/aristath/covercall/internal/utils"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"service": "covercall",
	}

	utils.WriteResponse(w, r, http.StatusOK, response, s.log)
}
