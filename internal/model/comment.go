package model

import "time"

// Comment belongs to exactly one article and one author.
type Comment struct {
	CommentID int64     `json:"comment_id"`
	Body      string    `json:"body"`
	ArticleID int64     `json:"article_id"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment is the input for posting a comment on an article.
type NewComment struct {
	ArticleID int64
	Author    string
	Body      string
}
