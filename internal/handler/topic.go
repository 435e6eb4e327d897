package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/service"
)

type TopicHandler struct {
	topics *service.TopicService
	logger *slog.Logger
}

func NewTopicHandler(topics *service.TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{topics: topics, logger: logger}
}

type CreateTopicRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// HandleList handles GET /api/topics
func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Topics []model.Topic `json:"topics"`
	}{topics})
}

// HandleCreate handles POST /api/topics
func (h *TopicHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	topic, err := h.topics.Create(r.Context(), req.Slug, req.Description)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Topic *model.Topic `json:"topic"`
	}{topic})
}
