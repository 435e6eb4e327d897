// Package seed holds the datasets the database can be reset to.
//
// The "test" dataset is small and fully known, so tests can assert exact
// counts and orderings against it. The "dev" dataset is for running the server
// locally with something to look at.
package seed

import (
	"fmt"
	"sort"
	"time"

	"github.com/sakif/nc-news/internal/model"
)

// Article is a seed row. Its id is its 1-based position in Dataset.Articles.
type Article struct {
	Title         string
	Topic         string
	Author        string
	Body          string
	CreatedAt     time.Time
	Votes         int
	ArticleImgURL string
}

// Comment is a seed row. ArticleID refers to a position in Dataset.Articles.
type Comment struct {
	ArticleID int64
	Author    string
	Body      string
	Votes     int
	CreatedAt time.Time
}

// Dataset is everything needed to populate an empty schema.
type Dataset struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []Article
	Comments []Comment
}

var datasets = map[string]func() Dataset{
	"test": Test,
	"dev":  Dev,
}

// ByName returns the named dataset.
func ByName(name string) (Dataset, error) {
	fn, ok := datasets[name]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset %q (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered datasets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(datasets))
	for n := range datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// at builds a UTC timestamp from a Unix time in milliseconds.
func at(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
