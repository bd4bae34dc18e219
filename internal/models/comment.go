package models

import "time"

type Comment struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	PostID   int    `json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID int    `json:"author_id"`
	User     User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Body     string `gorm:"not null" json:"body"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentRow is one comment joined with its author's username.
type CommentRow struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
