package model

// Topic is identified by its slug, e.g. "mitch" or "cats".
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// User is identified by username. Users are read-only through the API.
type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
