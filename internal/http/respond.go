package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxRequestBody = 1 << 20 // 1 MiB

// Error codes surfaced in failure envelopes.
const (
	codeBadRequest      = "BAD_REQUEST"
	codeValidation      = "VALIDATION_ERROR"
	codeNotFound        = "NOT_FOUND"
	codeInvalidPassword = "INVALID_PASSWORD"
	codeUpstream        = "UPSTREAM_ERROR"
	codeInternal        = "INTERNAL_ERROR"
)

// Every response is wrapped in one of two envelopes so clients can branch on
// a single ok flag.
type successEnvelope struct {
	OK     bool        `json:"ok"`
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
}

type failureEnvelope struct {
	OK     bool         `json:"ok"`
	Status int          `json:"status"`
	Error  errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (s *Server) respondData(w http.ResponseWriter, status int, data interface{}) {
	s.writeJSON(w, status, successEnvelope{OK: true, Status: status, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, failureEnvelope{OK: false, Status: status, Error: errorPayload{Code: code, Message: message}})
}

func (s *Server) respondValidation(w http.ResponseWriter, fields map[string]string) {
	s.writeJSON(w, http.StatusUnprocessableEntity, failureEnvelope{
		OK:     false,
		Status: http.StatusUnprocessableEntity,
		Error: errorPayload{
			Code:    codeValidation,
			Message: "Request validation failed",
			Details: fields,
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, codeValidation, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, codeValidation, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, codeValidation, "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, codeValidation, "Unable to parse request body")
	}
}
