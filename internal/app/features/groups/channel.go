// internal/app/features/groups/channel.go
package groups

import (
	"net/http"
	"strconv"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	apierr "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// defaultMessageLimit bounds one poll of the message log.
const defaultMessageLimit = 100

type postMessageRequest struct {
	Body string `json:"body"`
	Kind string `json:"kind"`
}

// PostMessage handles POST /groups/{groupID}/messages.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "channel.post_message")
	defer cancel()

	msg, err := h.Engine.Channel.PostMessage(ctx, id, caller.OID, req.Body, req.Kind)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, msg)
}

// ListMessages handles GET /groups/{groupID}/messages. The since query
// parameter is the last sequence number the caller has seen; only
// later messages are returned.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			apierr.WriteBadRequest(w, "since must be a non-negative integer")
			return
		}
		since = parsed
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "channel.list_messages")
	defer cancel()

	msgs, err := h.Engine.Channel.ListMessages(ctx, id, caller.OID, since, defaultMessageLimit)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

type uploadDocumentRequest struct {
	DisplayName  string `json:"display_name"`
	MimeCategory string `json:"mime_category"`
	SizeBytes    int64  `json:"size_bytes"`
}

// UploadDocument handles POST /groups/{groupID}/documents. The engine
// registers metadata and mints a content reference; the bytes go to
// the platform file service separately.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var req uploadDocumentRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "channel.upload_document")
	defer cancel()

	doc, err := h.Engine.Channel.UploadDocument(ctx, id, caller.OID, collab.UploadDocumentInput{
		DisplayName:  req.DisplayName,
		MimeCategory: req.MimeCategory,
		SizeBytes:    req.SizeBytes,
	})
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, doc)
}

// ListDocuments handles GET /groups/{groupID}/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "channel.list_documents")
	defer cancel()

	docs, err := h.Engine.Channel.ListDocuments(ctx, id, caller.OID)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// DeleteDocument handles DELETE /groups/{groupID}/documents/{documentID}.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		apierr.WriteNotFound(w, "no such resource")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "channel.delete_document")
	defer cancel()

	if err := h.Engine.Channel.DeleteDocument(ctx, id, caller.OID, docID); err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
