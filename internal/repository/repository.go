// Package repository holds all storage access for the blog core. Handlers
// never touch gorm directly; everything goes through PostRepository.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renankaic/blogr/internal/models"
)

var (
	// ErrNotFound means the referenced post id has no row.
	ErrNotFound = errors.New("post not found")
	// ErrForbidden means the viewer is not the post's author.
	ErrForbidden = errors.New("not the post author")
	// ErrEmptyComment rejects comments with no text before any row is written.
	ErrEmptyComment = errors.New("comment text is empty")
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postSelect = "posts.id, posts.title, posts.body, posts.author_id, posts.created_at, users.username AS author"

// GetPost fetches one post joined with its author's username, the post-wide
// like count and the viewer-specific liked flag. With checkAuthor set it
// fails with ErrForbidden unless viewerID owns the post; with includeTags
// set the post's tag list is attached in stored order.
func (r *PostRepository) GetPost(id, viewerID int, checkAuthor, includeTags bool) (*models.PostRow, error) {
	var row models.PostRow
	err := r.db.Model(&models.Post{}).
		Select(postSelect).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if checkAuthor && row.AuthorID != viewerID {
		return nil, fmt.Errorf("post %d: %w", id, ErrForbidden)
	}

	row.Likes = r.countLikes(id)
	row.Liked = r.hasLiked(id, viewerID)

	if includeTags {
		tagList, err := r.postTags(id)
		if err != nil {
			return nil, err
		}
		row.Tags = tagList
	}

	return &row, nil
}

// ListPosts returns every post, newest first, annotated with author username,
// like count, comment count and tag list. No authorization filtering.
func (r *PostRepository) ListPosts() ([]models.PostRow, error) {
	var rows []models.PostRow
	err := r.db.Model(&models.Post{}).
		Select(postSelect).
		Joins("JOIN users ON users.id = posts.author_id").
		Order("posts.created_at DESC, posts.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Likes = r.countLikes(rows[i].ID)
		r.db.Model(&models.Comment{}).Where("post_id = ?", rows[i].ID).Count(&rows[i].Comments)
		tagList, err := r.postTags(rows[i].ID)
		if err != nil {
			return nil, err
		}
		rows[i].Tags = tagList
	}

	return rows, nil
}

// ListComments returns a post's comments joined with the commenter username,
// newest first.
func (r *PostRepository) ListComments(postID int) ([]models.CommentRow, error) {
	var rows []models.CommentRow
	err := r.db.Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.author_id, comments.body, comments.created_at, users.username AS author").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC, comments.id DESC").
		Find(&rows).Error
	return rows, err
}

// CreatePost inserts the post and its tag associations in one transaction
// and returns the generated id.
func (r *PostRepository) CreatePost(title, body string, authorID int, tagList []string) (int, error) {
	post := models.Post{Title: title, Body: body, AuthorID: authorID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, tagList)
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// UpdatePost overwrites title and body and replaces the tag set. CreatedAt
// and AuthorID are never touched.
func (r *PostRepository) UpdatePost(id int, title, body string, tagList []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", id).
			Updates(map[string]interface{}{"title": title, "body": body})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return replaceTags(tx, id, tagList)
	})
}

// DeletePost removes the post row. Likes, comments and tag associations go
// with it via the schema's ON DELETE CASCADE.
func (r *PostRepository) DeletePost(id int) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}

// ReplaceTags makes the post's tag set exactly tagList: existing
// associations are deleted, then each tag is inserted into the catalog and
// associated with the post, both with ON CONFLICT DO NOTHING so duplicate
// input tokens and repeated calls are harmless.
func (r *PostRepository) ReplaceTags(postID int, tagList []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceTags(tx, postID, tagList)
	})
}

func replaceTags(tx *gorm.DB, postID int, tagList []string) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	for _, name := range tagList {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Tag{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.PostTag{PostID: postID, TagName: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddLike records that userID likes postID. Liking twice is a no-op.
func (r *PostRepository) AddLike(postID, userID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{PostID: postID, AuthorID: userID}).Error
}

// RemoveLike withdraws a like. Removing an absent like is a no-op.
func (r *PostRepository) RemoveLike(postID, userID int) error {
	return r.db.Where("post_id = ? AND author_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

// AddComment appends a comment with a server-assigned timestamp.
func (r *PostRepository) AddComment(postID, authorID int, body string) error {
	if body == "" {
		return ErrEmptyComment
	}
	return r.db.Create(&models.Comment{PostID: postID, AuthorID: authorID, Body: body}).Error
}

func (r *PostRepository) countLikes(postID int) int64 {
	var n int64
	r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&n)
	return n
}

func (r *PostRepository) hasLiked(postID, userID int) bool {
	var n int64
	r.db.Model(&models.Like{}).Where("post_id = ? AND author_id = ?", postID, userID).Count(&n)
	return n > 0
}

func (r *PostRepository) postTags(postID int) ([]string, error) {
	var tagList []string
	err := r.db.Model(&models.PostTag{}).
		Where("post_id = ?", postID).
		Pluck("tag_name", &tagList).Error
	return tagList, err
}
