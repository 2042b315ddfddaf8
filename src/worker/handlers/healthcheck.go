package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Scheduled int    `json:"scheduled"`
}

func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, HealthResponse{Status: "Im alive!", Scheduled: len(h.Controller.GetSchedulers())}, http.StatusOK)
}
