package models

import "time"

// Like marks one user's approval of one post. The composite primary key is
// what makes repeated likes idempotent: inserts carry ON CONFLICT DO NOTHING.
type Like struct {
	PostID   int  `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	AuthorID int  `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	Post     Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
