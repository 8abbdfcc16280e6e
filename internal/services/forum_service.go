package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// ForumService manages community posts, comments and likes
type ForumService struct {
	db *sql.DB
}

func NewForumService(db *sql.DB) *ForumService {
	return &ForumService{db: db}
}

// CreatePost publishes a new discussion post
func (s *ForumService) CreatePost(authorID string, req *models.PostCreation) (*models.Post, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    authorID,
		Title:     utils.SanitizeString(req.Title),
		Content:   utils.SanitizeString(req.Content),
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO posts (id, user_id, title, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		post.ID, post.UserID, post.Title, post.Content, post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// ListPosts returns all posts with authors, like counts and comments
func (s *ForumService) ListPosts() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at,
		       u.name, u.email,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		var name, email string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt,
			&name, &email, &p.LikeCount); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.Author = &models.User{ID: p.UserID, Name: name, Email: email}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		comments, err := s.listComments(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// GetPost fetches a single post with comments and like count
func (s *ForumService) GetPost(id string) (*models.Post, error) {
	var p models.Post
	var name, email string
	err := s.db.QueryRow(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at,
		       u.name, u.email,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &name, &email, &p.LikeCount)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	p.Author = &models.User{ID: p.UserID, Name: name, Email: email}

	p.Comments, err = s.listComments(p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddComment attaches a comment to a post
func (s *ForumService) AddComment(postID, authorID string, req *models.CommentCreation) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    authorID,
		Text:      utils.SanitizeString(req.Text),
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO post_comments (id, post_id, user_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.PostID, comment.UserID, comment.Text, comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ToggleLike flips the caller's like on a post. Returns true when the post
// is liked after the call, false when the like was removed.
func (s *ForumService) ToggleLike(postID, userID string) (bool, error) {
	if _, err := s.GetPost(postID); err != nil {
		return false, err
	}

	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO post_likes (post_id, user_id, created_at)
		VALUES (?, ?, ?)`, postID, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to like post: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return true, nil
	}

	// Already liked, so this toggle removes it.
	_, err = s.db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to unlike post: %w", err)
	}
	return false, nil
}

// GetComment fetches a single comment on a post
func (s *ForumService) GetComment(postID, commentID string) (*models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRow(`
		SELECT id, post_id, user_id, text, created_at
		FROM post_comments WHERE id = ? AND post_id = ?`, commentID, postID).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return &c, nil
}

// DeleteComment removes a comment from a post
func (s *ForumService) DeleteComment(postID, commentID string) error {
	result, err := s.db.Exec(
		"DELETE FROM post_comments WHERE id = ? AND post_id = ?", commentID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("comment not found")
	}
	return nil
}

// DeletePost removes a post along with its comments and likes
func (s *ForumService) DeletePost(id string) error {
	result, err := s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (s *ForumService) listComments(postID string) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.post_id, c.user_id, c.text, c.created_at, u.name, u.email
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var name, email string
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt, &name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Author = &models.User{ID: c.UserID, Name: name, Email: email}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
