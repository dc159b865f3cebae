package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"i4.energy/across/mc20/modem"
)

// Server handles incoming HTTP requests for interacting with the
// configured modem instance
type Server struct {
	Logger *slog.Logger
	Modem  *modem.Modem
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /at", s.handleAT)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)

}

// handleAT runs one command/response transaction on the modem
func (s *Server) handleAT(w http.ResponseWriter, r *http.Request) {
	type ATRequest struct {
		Command string `json:"command"`
		Expect  string `json:"expect"`
	}

	var req ATRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Command == "" {
		s.sendError(w, "'command' field is required", http.StatusBadRequest)
		return
	}
	if req.Expect == "" {
		req.Expect = "OK"
	}

	match, err := s.Modem.Execute(r.Context(), req.Command, req.Expect)
	if err != nil {
		s.Logger.Error("Command failed", "error", err, "command", req.Command)
		s.sendError(w, err.Error(), statusFor(err))
		return
	}

	s.Logger.Info("Command succeeded", "command", req.Command, "match", match.String())

	type ATResponse struct {
		Match string `json:"match"`
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ATResponse{Match: match.String()})
}

// handleHealth reports whether the modem session is established
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.Modem.State()
	if state != modem.Established {
		s.sendError(w, state.String(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, modem.ErrEmptyCommand):
		return http.StatusBadRequest
	case errors.Is(err, modem.ErrNotEstablished), errors.Is(err, modem.ErrAlreadyClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, modem.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, modem.ErrMismatch), errors.Is(err, modem.ErrLineTooLong):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
