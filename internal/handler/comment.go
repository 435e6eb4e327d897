package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/nc-news/internal/service"
)

// CommentHandler serves /api/comments/{comment_id}.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// HandleVote handles PATCH /api/comments/{comment_id}
func (h *CommentHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var req VoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	comment, err := h.comments.Vote(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentEnvelope{Comment: comment})
}

// HandleDelete handles DELETE /api/comments/{comment_id}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
