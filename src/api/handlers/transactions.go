package handlers

import (
	"context"
	"net/http"
	"time"

	"advisor/src/api/controllers"
	"advisor/src/utils"
)

const (
	maxUploadSize         = 32 << 20
	NoFileProvidedMessage = "No file provided"
)

func (h *Handler) UploadTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	user, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.Unauthorized(controllers.AuthMissingMessage))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.HandleErrors(w, utils.BadRequest(NoFileProvidedMessage))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.HandleErrors(w, utils.BadRequest(NoFileProvidedMessage))
		return
	}
	defer file.Close()

	response, err := h.TransactionsController.ImportTransactions(ctx, user, file)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.Unauthorized(controllers.AuthMissingMessage))
		return
	}

	response, err := h.TransactionsController.GetTransactions(ctx, user)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	user, ok := UserFromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.Unauthorized(controllers.AuthMissingMessage))
		return
	}

	response, err := h.TransactionsController.GetSummary(ctx, user)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	xlsxFile, err := h.TransactionsController.GenerateTemplate(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer xlsxFile.Close()

	w.Header().Set("Content-Type", utils.XLSXContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=transactions_template.xlsx")

	if err := xlsxFile.Write(w); err != nil {
		h.Logger.WithError(err).Error("Failed to write template")
	}
}
