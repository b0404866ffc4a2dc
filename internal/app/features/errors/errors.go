// internal/app/features/errors/errors.go

// Package errors is the HTTP error boundary: it maps engine rejections
// onto JSON responses and keeps infrastructure failures out of
// response bodies.
package errors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; all API payloads are small
// metadata documents.
const maxBodyBytes = 1 << 20

// Writer turns errors into JSON responses. Engine rejections carry
// their kind and message to the caller; anything else is logged and
// reported as a plain 500.
type Writer struct {
	log *zap.Logger
}

// NewWriter constructs a Writer.
func NewWriter(log *zap.Logger) *Writer {
	return &Writer{log: log}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var kindStatus = map[collab.Kind]int{
	collab.KindValidation:          http.StatusBadRequest,
	collab.KindNotFound:            http.StatusNotFound,
	collab.KindForbidden:           http.StatusForbidden,
	collab.KindInvalidTransition:   http.StatusConflict,
	collab.KindInvalidState:        http.StatusConflict,
	collab.KindDuplicatePending:    http.StatusConflict,
	collab.KindAlreadyMember:       http.StatusConflict,
	collab.KindNotMember:           http.StatusForbidden,
	collab.KindCannotRemoveCreator: http.StatusConflict,
}

// WriteError renders err. Safe to call with any error.
func (w *Writer) WriteError(rw http.ResponseWriter, r *http.Request, err error) {
	var engineErr *collab.Error
	if errors.As(err, &engineErr) {
		status, ok := kindStatus[engineErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		WriteJSON(rw, status, errorBody{Error: errorDetail{
			Kind:    string(engineErr.Kind),
			Message: engineErr.Message,
		}})
		return
	}

	w.log.Error("internal error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	WriteJSON(rw, http.StatusInternalServerError, errorBody{Error: errorDetail{
		Kind:    "internal",
		Message: "internal server error",
	}})
}

// WriteBadRequest renders a 400 with a caller-facing message.
func WriteBadRequest(rw http.ResponseWriter, message string) {
	WriteJSON(rw, http.StatusBadRequest, errorBody{Error: errorDetail{
		Kind:    string(collab.KindValidation),
		Message: message,
	}})
}

// WriteNotFound renders a 404 with a caller-facing message.
func WriteNotFound(rw http.ResponseWriter, message string) {
	WriteJSON(rw, http.StatusNotFound, errorBody{Error: errorDetail{
		Kind:    string(collab.KindNotFound),
		Message: message,
	}})
}

// WriteJSON renders v with the given status.
func WriteJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

// DecodeJSON reads a size-capped JSON body into dst.
func DecodeJSON(rw http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(rw, r.Body, maxBodyBytes)
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(r.Body).Decode(dst)
}
