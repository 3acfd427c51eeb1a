package handlers

import "net/http"

// ReadyHandler answers liveness/readiness probes, carried over unchanged
// from internal/http/handlers/ready_handler.go.
type ReadyHandler struct{}

func NewReadyHandler() *ReadyHandler { return &ReadyHandler{} }

func (h *ReadyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
