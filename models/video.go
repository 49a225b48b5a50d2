package models

import (
	"net/url"
	"time"
)

// Video represents a row of the videos table.
// ID and CreatedAt are assigned by the database and omitted on insert.
type Video struct {
	ID          int64      `json:"id,omitempty"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FilePath    string     `json:"file_path"`
	URL         string     `json:"url"`
	FullURL     string     `json:"fullUrl"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// WatchPath is the public page for this video.
func (v Video) WatchPath() string {
	return "/watch/" + url.PathEscape(v.Slug)
}
