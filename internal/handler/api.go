package handler

import (
	_ "embed"
	"net/http"
)

// endpointsJSON documents every route. It is compiled into the binary, so
// GET /api works no matter the working directory.
//
//go:embed endpoints.json
var endpointsJSON []byte

// Endpoints returns the embedded endpoint description document.
func Endpoints() []byte {
	return endpointsJSON
}

// HandleEndpoints handles GET /api
func HandleEndpoints(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(endpointsJSON)
}
