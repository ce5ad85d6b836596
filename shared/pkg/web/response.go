package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

func WriteError(w http.ResponseWriter, status int, message string, log zerolog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, log)
}
