// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// DefaultArticleImgURL is stored when a new article omits article_img_url.
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// ArticleSummary is the list-view projection of an article.
//
// It never carries the body: list responses stay small no matter how long
// individual articles are. CommentCount is computed by the query, never stored.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

// Article is the detail view: every summary field plus the body.
//
// EMBEDDING:
// encoding/json flattens embedded struct fields into the parent object, so an
// Article serialises as one flat JSON object, not {"ArticleSummary": {...}}.
type Article struct {
	ArticleSummary
	Body string `json:"body"`
}

// NewArticle is the input for creating an article. ArticleImgURL may be empty,
// in which case DefaultArticleImgURL is stored.
type NewArticle struct {
	Author        string
	Title         string
	Body          string
	Topic         string
	ArticleImgURL string
}
