package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body sent on any handler failure, carried
// over from internal/http/handlers/send_error.go.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
}

func sendError(log *logrus.Logger, w http.ResponseWriter, message string, err error, code int) {
	log.WithFields(logrus.Fields{"error": err, "code": code}).Error(message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Message: message,
		Error:   err.Error(),
		Code:    code,
	})
}
