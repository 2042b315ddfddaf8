package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"advisor/src/models"
	"advisor/src/schemas"
	"advisor/src/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var payload interface{} = map[string]interface{}{}
	req := new(schemas.SignupRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httpErr := h.toHTTPError(utils.BadRequest("Invalid request body"))
		h.recordRequest(ctx, r, payload, httpErr, httpErr.Code)
		utils.WriteError(w, httpErr)
		return
	}
	payload = req.AuditPayload()

	response, err := h.AuthController.Signup(ctx, req)
	if err != nil {
		httpErr := h.toHTTPError(err)
		h.recordRequest(ctx, r, payload, httpErr, httpErr.Code)
		utils.WriteError(w, httpErr)
		return
	}

	h.recordRequest(ctx, r, payload, response, http.StatusCreated)
	h.respond(w, r, response, http.StatusCreated)
}

// recordRequest stores the audit row for a signup attempt. A failure to
// store it is logged and does not change the response.
func (h *Handler) recordRequest(ctx context.Context, r *http.Request, payload, response interface{}, status int) {
	requestPayload, err := json.Marshal(payload)
	if err != nil {
		requestPayload = []byte("{}")
	}
	responsePayload, err := json.Marshal(response)
	if err != nil {
		responsePayload = nil
	}

	err = h.RequestLogs.Create(ctx, &models.RequestLog{
		URL:             r.URL.RequestURI(),
		Method:          r.Method,
		RequestPayload:  requestPayload,
		ResponsePayload: responsePayload,
		StatusCode:      status,
		Success:         status < http.StatusBadRequest,
	})
	if err != nil {
		h.Logger.WithError(err).Warn("Failed to store request log")
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req := new(schemas.LoginRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("Invalid request body"))
		return
	}

	tokens, err := h.AuthController.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, tokens, http.StatusOK)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req := new(schemas.RefreshRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("Invalid request body"))
		return
	}

	access, err := h.AuthController.RefreshToken(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, access, http.StatusOK)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.AuthController.GetAllUsers(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, users, http.StatusOK)
}
