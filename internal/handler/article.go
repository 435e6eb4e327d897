package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/service"
)

// ArticleHandler serves /api/articles and its sub-resources.
type ArticleHandler struct {
	articles *service.ArticleService
	comments *service.CommentService
	logger   *slog.Logger
}

func NewArticleHandler(articles *service.ArticleService, comments *service.CommentService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		comments: comments,
		logger:   logger,
	}
}

// CreateArticleRequest is the body of POST /api/articles.
type CreateArticleRequest struct {
	Author        string `json:"author" validate:"required"`
	Title         string `json:"title" validate:"required,max=300"`
	Body          string `json:"body" validate:"required"`
	Topic         string `json:"topic" validate:"required"`
	ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
}

// VoteRequest is the body of both PATCH endpoints. IncVotes is a pointer so a
// missing field is told apart from an explicit 0. The bounds are the range of
// the votes columns.
type VoteRequest struct {
	IncVotes *int `json:"inc_votes" validate:"required,min=-2147483648,max=2147483647"`
}

// CreateCommentRequest is the body of POST /api/articles/{article_id}/comments.
type CreateCommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// articlesEnvelope nests the page under "articles":
//
//	{"articles": {"articles": [...], "total_count": 12}}
type articlesEnvelope struct {
	Articles *repository.ArticlePage `json:"articles"`
}

type articleEnvelope struct {
	Article *model.Article `json:"article"`
}

type commentsEnvelope struct {
	Comments []model.Comment `json:"comments"`
}

type commentEnvelope struct {
	Comment *model.Comment `json:"comment"`
}

// HandleList handles GET /api/articles?topic=&sort_by=&order=&page=&limit=
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.articles.List(r.Context(), service.ArticleListParams{
		Topic:  q.Get("topic"),
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articlesEnvelope{Articles: result})
}

// HandleGet handles GET /api/articles/{article_id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articleEnvelope{Article: article})
}

// HandleCreate handles POST /api/articles
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	article, err := h.articles.Create(r.Context(), model.NewArticle{
		Author:        req.Author,
		Title:         req.Title,
		Body:          req.Body,
		Topic:         req.Topic,
		ArticleImgURL: req.ArticleImgURL,
	})
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, articleEnvelope{Article: article})
}

// HandleVote handles PATCH /api/articles/{article_id}
func (h *ArticleHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var req VoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	article, err := h.articles.Vote(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articleEnvelope{Article: article})
}

// HandleDelete handles DELETE /api/articles/{article_id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := h.articles.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListComments handles GET /api/articles/{article_id}/comments
func (h *ArticleHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	comments, err := h.comments.ListForArticle(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentsEnvelope{Comments: comments})
}

// HandleCreateComment handles POST /api/articles/{article_id}/comments
func (h *ArticleHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var req CreateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), model.NewComment{
		ArticleID: id,
		Author:    req.Username,
		Body:      req.Body,
	})
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentEnvelope{Comment: comment})
}
