package repository_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renankaic/blogr/internal/database"
	"github.com/renankaic/blogr/internal/models"
	"github.com/renankaic/blogr/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	// and makes the foreign_keys pragma stick.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) int {
	t.Helper()
	u := models.User{Username: name, Password: "irrelevant"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u.ID
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	id, err := repo.CreatePost("First post", "hello world", alice, []string{"go", "web"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if id == 0 {
		t.Fatal("CreatePost returned zero id")
	}

	post, err := repo.GetPost(id, alice, false, true)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "First post" || post.Body != "hello world" {
		t.Errorf("unexpected post contents: %+v", post)
	}
	if post.Author != "alice" || post.AuthorID != alice {
		t.Errorf("author not joined: %+v", post)
	}
	if post.Likes != 0 || post.Liked {
		t.Errorf("fresh post should have no likes: likes=%d liked=%v", post.Likes, post.Liked)
	}
	if got := sorted(post.Tags); len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("tags = %v, want [go web]", post.Tags)
	}
	if post.CreatedAt.IsZero() {
		t.Error("created timestamp not assigned")
	}
}

func TestGetPostNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	_, err := repo.GetPost(42, alice, false, false)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetPostChecksAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.CreatePost("mine", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if _, err := repo.GetPost(id, alice, true, false); err != nil {
		t.Errorf("owner with checkAuthor: %v", err)
	}
	if _, err := repo.GetPost(id, bob, true, false); !errors.Is(err, repository.ErrForbidden) {
		t.Errorf("non-owner with checkAuthor: err = %v, want ErrForbidden", err)
	}
	if _, err := repo.GetPost(id, bob, false, false); err != nil {
		t.Errorf("non-owner without checkAuthor: %v", err)
	}
}

func TestReplaceTagsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	id, err := repo.CreatePost("tagged", "", alice, []string{"go", "web"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.ReplaceTags(id, []string{"go", "blog"}); err != nil {
			t.Fatalf("ReplaceTags pass %d: %v", i+1, err)
		}
	}

	post, err := repo.GetPost(id, alice, false, true)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got := sorted(post.Tags); len(got) != 2 || got[0] != "blog" || got[1] != "go" {
		t.Errorf("tags = %v, want [blog go]", post.Tags)
	}

	// Old catalog entries stay around even when no post references them.
	var web int64
	db.Model(&models.Tag{}).Where("name = ?", "web").Count(&web)
	if web != 1 {
		t.Errorf("orphaned tag pruned, want it kept")
	}
}

func TestReplaceTagsToleratesDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	id, err := repo.CreatePost("dup", "", alice, []string{"go", "go", "web"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	var n int64
	db.Model(&models.PostTag{}).Where("post_id = ?", id).Count(&n)
	if n != 2 {
		t.Errorf("association rows = %d, want 2", n)
	}
}

func TestLikeIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.CreatePost("likeable", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := repo.AddLike(id, bob); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := repo.AddLike(id, bob); err != nil {
		t.Fatalf("second AddLike: %v", err)
	}

	post, err := repo.GetPost(id, bob, false, false)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Likes != 1 || !post.Liked {
		t.Errorf("likes=%d liked=%v, want 1/true", post.Likes, post.Liked)
	}

	if err := repo.RemoveLike(id, bob); err != nil {
		t.Fatalf("RemoveLike: %v", err)
	}
	if err := repo.RemoveLike(id, bob); err != nil {
		t.Fatalf("RemoveLike on absent like: %v", err)
	}

	post, err = repo.GetPost(id, bob, false, false)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Likes != 0 || post.Liked {
		t.Errorf("likes=%d liked=%v after removal, want 0/false", post.Likes, post.Liked)
	}
}

func TestListPosts(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	older, err := repo.CreatePost("older", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	db.Model(&models.Post{}).Where("id = ?", older).
		Update("created_at", time.Now().UTC().Add(-time.Hour))

	newer, err := repo.CreatePost("newer", "", bob, []string{"web", "blog"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := repo.AddLike(older, alice); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := repo.AddLike(older, bob); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := repo.AddComment(older, bob, "nice"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	posts, err := repo.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2", len(posts))
	}
	if posts[0].ID != newer || posts[1].ID != older {
		t.Errorf("order = [%d %d], want newest first [%d %d]", posts[0].ID, posts[1].ID, newer, older)
	}
	if posts[1].Likes != 2 {
		t.Errorf("likes = %d, want 2", posts[1].Likes)
	}
	if posts[1].Comments != 1 {
		t.Errorf("comments = %d, want 1", posts[1].Comments)
	}
	if posts[0].Author != "bob" || posts[1].Author != "alice" {
		t.Errorf("authors = %q/%q", posts[0].Author, posts[1].Author)
	}
	if got := sorted(posts[0].Tags); len(got) != 2 || got[0] != "blog" || got[1] != "web" {
		t.Errorf("tags = %v", posts[0].Tags)
	}

	// A third user who never liked the post sees liked=false but the full count.
	viewed, err := repo.GetPost(older, carol, false, false)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if viewed.Likes != 2 || viewed.Liked {
		t.Errorf("third viewer: likes=%d liked=%v, want 2/false", viewed.Likes, viewed.Liked)
	}
}

func TestUpdatePost(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	id, err := repo.CreatePost("before", "old body", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	original, err := repo.GetPost(id, alice, false, false)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}

	if err := repo.UpdatePost(id, "after", "new body", []string{"web"}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	post, err := repo.GetPost(id, alice, false, true)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "after" || post.Body != "new body" {
		t.Errorf("fields not overwritten: %+v", post)
	}
	if len(post.Tags) != 1 || post.Tags[0] != "web" {
		t.Errorf("tags = %v, want [web]", post.Tags)
	}
	if post.AuthorID != alice {
		t.Errorf("author changed to %d", post.AuthorID)
	}
	if !post.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created timestamp changed: %v -> %v", original.CreatedAt, post.CreatedAt)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	seedUser(t, db, "alice")

	err := repo.UpdatePost(42, "x", "y", []string{"go"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.CreatePost("doomed", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := repo.AddLike(id, bob); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := repo.AddComment(id, bob, "bye"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := repo.DeletePost(id); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	if _, err := repo.GetPost(id, alice, false, false); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("post still readable: %v", err)
	}
	var likes, comments, assocs, catalog int64
	db.Model(&models.Like{}).Where("post_id = ?", id).Count(&likes)
	db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&comments)
	db.Model(&models.PostTag{}).Where("post_id = ?", id).Count(&assocs)
	db.Model(&models.Tag{}).Where("name = ?", "go").Count(&catalog)
	if likes != 0 || comments != 0 || assocs != 0 {
		t.Errorf("orphans left: likes=%d comments=%d assocs=%d", likes, comments, assocs)
	}
	if catalog != 1 {
		t.Errorf("tag catalog entry removed, want it kept")
	}

	if err := repo.DeletePost(id); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestAddCommentEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")

	id, err := repo.CreatePost("quiet", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := repo.AddComment(id, alice, ""); !errors.Is(err, repository.ErrEmptyComment) {
		t.Fatalf("err = %v, want ErrEmptyComment", err)
	}
	var n int64
	db.Model(&models.Comment{}).Count(&n)
	if n != 0 {
		t.Errorf("comment rows = %d, want 0", n)
	}
}

func TestListComments(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.CreatePost("chatty", "", alice, []string{"go"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := repo.AddComment(id, alice, "first"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if err := repo.AddComment(id, bob, "second"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	comments, err := repo.ListComments(id)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("len = %d, want 2", len(comments))
	}
	if comments[0].Body != "second" || comments[0].Author != "bob" {
		t.Errorf("newest first expected, got %+v", comments[0])
	}
	if comments[1].Body != "first" || comments[1].Author != "alice" {
		t.Errorf("got %+v", comments[1])
	}
}
