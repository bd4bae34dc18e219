package models

import "time"

type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `json:"body"`
	AuthorID int    `json:"author_id"`
	User     User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"user"`

	CreatedAt time.Time `json:"created_at"`
}

// PostRow is the shape of one post as queried for display: the post columns
// joined with the author's username, plus the viewer-dependent engagement
// numbers. One struct per query shape instead of a generic row map.
type PostRow struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  int       `json:"author_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int64     `json:"likes"`
	Liked     bool      `json:"liked"`
	Comments  int64     `json:"comments"`
	Tags      []string  `json:"tags"`
}

type CreatePostRequest struct {
	Title string `form:"title"`
	Body  string `form:"body"`
	Tags  string `form:"tags"`
}
