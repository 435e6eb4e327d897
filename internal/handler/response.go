package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//
//	{"msg": "article 999 not found"}
//
// Internal errors additionally carry an incident id that also appears in the
// server log, so a client report can be matched to the underlying failure
// without the response leaking engine text:
//
//	{"msg": "Internal Server Error", "incident": "cs4l2ba1e6hqg9b4bjv0"}

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/nc-news/internal/apperror"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Msg      string `json:"msg"`
	Incident string `json:"incident,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written. Once Encode
// calls w.Write the headers are on the wire and later changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// statusFor maps an error Kind to its HTTP status.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single place a domain error becomes an HTTP response.
//
// The service layer never knows about status codes; it returns apperror
// values and this function translates them. Anything that is not an
// *apperror.AppError is a 500 with a generic message.
func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	status := statusFor(kind)

	if kind == apperror.KindInternal {
		incident := xid.New().String()
		logger.Error("internal error",
			slog.String("incident", incident),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, ErrorResponse{Msg: apperror.MessageOf(err), Incident: incident})
		return
	}

	writeJSON(w, status, ErrorResponse{Msg: apperror.MessageOf(err)})
}

// NotFound is the router's fallback for unmatched paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Msg: "Not Found"})
}

// MethodNotAllowed answers a known path requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Msg: "Method Not Allowed"})
}
