package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/models"
)

func TestForumPostWithCommentsAndLikes(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", models.UserRoleFarmer)
	reader := createTestUser(t, db, "reader@example.com", models.UserRoleFarmer)

	forum := NewForumService(db)
	post, err := forum.CreatePost(author.ID, &models.PostCreation{
		Title:   "Best maize varieties this season?",
		Content: "Looking for drought tolerant options.",
	})
	require.NoError(t, err)

	_, err = forum.AddComment(post.ID, reader.ID, &models.CommentCreation{
		Text: "DK777 did well for me.",
	})
	require.NoError(t, err)

	liked, err := forum.ToggleLike(post.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	fetched, err := forum.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.LikeCount)
	require.Len(t, fetched.Comments, 1)
	assert.Equal(t, reader.ID, fetched.Comments[0].UserID)
}

func TestForumLikeToggles(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", models.UserRoleFarmer)

	forum := NewForumService(db)
	post, err := forum.CreatePost(author.ID, &models.PostCreation{
		Title:   "Hello",
		Content: "First post",
	})
	require.NoError(t, err)

	liked, err := forum.ToggleLike(post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// Second toggle removes the like rather than double counting it.
	liked, err = forum.ToggleLike(post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	fetched, err := forum.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.LikeCount)
}

func TestForumDeletePostCascades(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", models.UserRoleFarmer)

	forum := NewForumService(db)
	post, err := forum.CreatePost(author.ID, &models.PostCreation{
		Title:   "Ephemeral",
		Content: "Soon gone",
	})
	require.NoError(t, err)

	_, err = forum.AddComment(post.ID, author.ID, &models.CommentCreation{Text: "bye"})
	require.NoError(t, err)

	require.NoError(t, forum.DeletePost(post.ID))

	var comments int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM post_comments WHERE post_id = ?", post.ID).Scan(&comments))
	assert.Equal(t, 0, comments)
}
