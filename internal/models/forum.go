package models

import "time"

// Post represents a forum discussion post
type Post struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Comments  []Comment `json:"comments"`
	LikeCount int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Author *User `json:"author,omitempty"`
}

// Comment represents a comment attached to a post
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Author *User `json:"author,omitempty"`
}

// PostCreation represents data for creating a post
type PostCreation struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// CommentCreation represents data for commenting on a post
type CommentCreation struct {
	Text string `json:"text" validate:"required"`
}
