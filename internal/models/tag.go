package models

// Tag is a catalog entry. Rows are created the first time any post uses the
// name and are never deleted, so orphaned tags accumulate.
type Tag struct {
	Name string `gorm:"primaryKey" json:"name"`
}

// PostTag associates a post with a tag name. The pair is the primary key, so
// duplicate associations collapse under ON CONFLICT DO NOTHING.
type PostTag struct {
	PostID  int    `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagName string `gorm:"primaryKey" json:"tag_name"`
	Post    Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Tag     Tag    `gorm:"foreignKey:TagName;references:Name" json:"-"`
}
