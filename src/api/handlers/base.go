package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"advisor/src/api/controllers"
	"advisor/src/clients/amfi"
	"advisor/src/repositories"
	"advisor/src/services"
	"advisor/src/utils"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	AuthController         controllers.AuthControllerI
	TransactionsController controllers.TransactionsControllerI
	RequestLogs            repositories.RequestLogRepository
	Logger                 *logrus.Logger
}

func NewHandler(
	authController controllers.AuthControllerI,
	transactionsController controllers.TransactionsControllerI,
	requestLogs repositories.RequestLogRepository,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		AuthController:         authController,
		TransactionsController: transactionsController,
		RequestLogs:            requestLogs,
		Logger:                 logger,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	utils.WriteError(w, h.toHTTPError(err))
}

// toHTTPError maps domain errors onto the status codes clients see.
func (h *Handler) toHTTPError(err error) *utils.HTTPError {
	var (
		httpErr   *utils.HTTPError
		missing   *services.MissingColumnsError
		importErr *services.ImportError
	)
	switch {
	case err == nil:
		return &utils.HTTPError{Code: http.StatusInternalServerError, Message: "Unhandled error"}
	case errors.Is(err, context.DeadlineExceeded):
		return &utils.HTTPError{Code: http.StatusGatewayTimeout, Message: "Request timed out"}
	case errors.As(err, &missing):
		return &utils.HTTPError{Code: http.StatusBadRequest, Message: missing.Error(), Required: missing.Required}
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &importErr):
		return &utils.HTTPError{Code: http.StatusBadRequest, Message: importErr.Error()}
	case errors.Is(err, amfi.ErrARNNotFound):
		return &utils.HTTPError{Code: http.StatusNotFound, Message: controllers.ARNNotFoundMessage}
	case errors.Is(err, repositories.ErrUserNotFound):
		return &utils.HTTPError{Code: http.StatusNotFound, Message: controllers.UserNotFoundMessage}
	case errors.Is(err, services.ErrInvalidToken):
		return &utils.HTTPError{Code: http.StatusUnauthorized, Message: err.Error()}
	default:
		h.Logger.WithError(err).Error("Unhandled error")
		return &utils.HTTPError{Code: http.StatusInternalServerError, Message: "Internal Server Error"}
	}
}
