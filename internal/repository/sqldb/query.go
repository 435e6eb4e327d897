package sqldb

import (
	"fmt"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/repository"
)

// sortColumns is the allow-list for ?sort_by=.
//
// SQL INJECTION:
// Placeholders only work for values, never for identifiers or keywords, so
// ORDER BY is the one place a client string could reach the SQL text. It
// never does: the client value is used as a map key and the SQL fragment
// comes from the map value, which is a constant in this file.
var sortColumns = map[string]string{
	"article_id":      "articles.article_id",
	"title":           "articles.title",
	"created_at":      "articles.created_at",
	"topic":           "articles.topic",
	"author":          "articles.author",
	"article_img_url": "articles.article_img_url",
	"votes":           "articles.votes",
	"comment_count":   "comment_count",
}

// sortColumn resolves a sort_by value to its SQL expression.
// An empty string means repository.DefaultSortBy.
func sortColumn(s string) (string, error) {
	if s == "" {
		s = repository.DefaultSortBy
	}
	col, ok := sortColumns[s]
	if !ok {
		return "", apperror.ValidationFailed("sort_by",
			fmt.Sprintf("invalid sort_by %q: must be one of %s", s, strings.Join(repository.SortFields, ", ")))
	}
	return col, nil
}

const articleSummaryColumns = `articles.article_id, articles.title, articles.topic, articles.author,
	articles.created_at, articles.votes, articles.article_img_url,
	COUNT(comments.comment_id) AS comment_count`

// BuildArticleQuery produces the paginated article listing statement and its
// parameters, in `?` placeholder form.
//
// The statement:
//   - projects every summary column except body
//   - left joins comments so articles without comments report comment_count 0
//   - filters by topic when one is given
//   - orders by the validated column and direction, then by article_id so that
//     ties come back in a stable order across pages
//   - applies LIMIT and OFFSET
//
// A sort_by or order outside the allow-lists returns a validation error and no SQL.
func BuildArticleQuery(opts repository.ArticleListOptions) (string, []any, error) {
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}
	col, err := sortColumn(opts.SortBy)
	if err != nil {
		return "", nil, err
	}
	dir, err := repository.ParseOrder(opts.Order)
	if err != nil {
		return "", nil, err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = repository.DefaultListLimit
	}

	var (
		b      strings.Builder
		params []any
	)

	b.WriteString("SELECT ")
	b.WriteString(articleSummaryColumns)
	b.WriteString("\nFROM articles\nLEFT JOIN comments ON comments.article_id = articles.article_id")

	if opts.Topic != "" {
		b.WriteString("\nWHERE articles.topic = ?")
		params = append(params, opts.Topic)
	}

	b.WriteString("\nGROUP BY articles.article_id")
	fmt.Fprintf(&b, "\nORDER BY %s %s", col, dir)
	if col != "articles.article_id" {
		b.WriteString(", articles.article_id ASC")
	}

	b.WriteString("\nLIMIT ? OFFSET ?")
	params = append(params, limit, opts.Offset)

	return b.String(), params, nil
}

// BuildArticleCountQuery counts the articles matching opts.Topic. Sorting and
// pagination do not affect the count.
func BuildArticleCountQuery(opts repository.ArticleListOptions) (string, []any) {
	if opts.Topic == "" {
		return "SELECT COUNT(*) FROM articles", nil
	}
	return "SELECT COUNT(*) FROM articles WHERE articles.topic = ?", []any{opts.Topic}
}
