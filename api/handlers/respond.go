package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"toolbox/api/dto"
	"toolbox/api/middleware"
	"toolbox/api/service"
	"toolbox/api/session"
	"toolbox/api/validation"
	"toolbox/calculator"
	"toolbox/converter"
	"toolbox/pool"
	"toolbox/textstats"
)

// apiError is the HTTP form of a domain error.
type apiError struct {
	status  int
	code    string
	message string
}

func classify(err error) apiError {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, validation.ErrNotAnImage):
		return apiError{http.StatusBadRequest, dto.CodeNotAnImage, "Please upload an image file"}
	case errors.Is(err, validation.ErrFileTooLarge), errors.As(err, &maxBytes):
		return apiError{http.StatusRequestEntityTooLarge, dto.CodeTooLarge, "File is too large"}
	case errors.Is(err, converter.ErrDecode):
		return apiError{http.StatusUnprocessableEntity, dto.CodeMediaError, "Failed to load image"}
	case converter.IsMediaError(err):
		return apiError{http.StatusUnprocessableEntity, dto.CodeMediaError, "Error converting image"}
	case errors.Is(err, session.ErrBusy):
		return apiError{http.StatusConflict, dto.CodeBusy, "Image is already being processed"}
	case errors.Is(err, session.ErrNotFound):
		return apiError{http.StatusNotFound, dto.CodeNotFound, "No image uploaded"}
	case errors.Is(err, service.ErrUnknownTool):
		return apiError{http.StatusNotFound, dto.CodeNotFound, "Tool does not process images"}
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, converter.ErrInvalidTarget),
		errors.Is(err, textstats.ErrUnknownAction),
		errors.Is(err, service.ErrSessionRequired),
		errors.Is(err, validation.ErrEmptyFile),
		validation.IsInputError(err):
		return apiError{http.StatusBadRequest, dto.CodeInvalidInput, err.Error()}
	case errors.Is(err, pool.ErrClosed):
		return apiError{http.StatusServiceUnavailable, dto.CodeUnavailable, "Server is shutting down"}
	default:
		return apiError{http.StatusInternalServerError, dto.CodeInternalError, "Internal server error"}
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleError logs err and writes its JSON form. Client errors log at warn.
func handleError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	traceID := middleware.GetTraceID(r.Context())
	apiErr := classify(err)

	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("path", r.URL.Path),
		zap.Int("status", apiErr.status),
		zap.Error(err),
	}
	if apiErr.status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Warn("Request rejected", fields...)
	}

	respondJSON(w, apiErr.status, dto.ErrorResponse{
		Error:   apiErr.message,
		Code:    apiErr.code,
		TraceID: traceID,
	})
}
