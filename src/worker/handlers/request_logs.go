package handlers

import (
	"context"
	"net/http"
	"time"
)

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

type ScheduleResponse struct {
	Task string    `json:"task"`
	Next time.Time `json:"next"`
}

func (h *Handler) PurgeRequestLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	deleted, err := h.Controller.PurgeRequestLogs(ctx, time.Now())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, PurgeResponse{Deleted: deleted}, http.StatusOK)
}

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := []ScheduleResponse{}
	for name, task := range h.Controller.GetSchedulers() {
		schedules = append(schedules, ScheduleResponse{Task: name, Next: task.Next()})
	}
	h.respond(w, r, schedules, http.StatusOK)
}
