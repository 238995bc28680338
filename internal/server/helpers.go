package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/motioncore/motioncore/internal/docs"
	"github.com/motioncore/motioncore/internal/registry"
)

const cacheControl = "public, max-age=3600"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// writeText serves generated documents with the shared caching policy. The
// documents are cheap to rebuild, so caching is left to clients and CDNs.
func writeText(w http.ResponseWriter, contentType, body string) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var docNotFound *docs.DocNotFoundError
	if errors.As(err, &docNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: docNotFound.Error(),
		}
	}

	if errors.Is(err, docs.ErrInvalidOrigin) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	if errors.Is(err, registry.ErrNotFound) || errors.Is(err, registry.ErrAssetNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}
