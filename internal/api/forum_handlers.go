package api

import (
	"github.com/gin-gonic/gin"

	"agrilink-backend/internal/models"
	"agrilink-backend/internal/policy"
	"agrilink-backend/internal/services"
)

// ForumHandler serves community post endpoints
type ForumHandler struct {
	forum *services.ForumService
}

func NewForumHandler(forum *services.ForumService) *ForumHandler {
	return &ForumHandler{forum: forum}
}

// CreatePost publishes a post for the caller
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req models.PostCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	post, err := h.forum.CreatePost(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "post published", post)
}

// ListPosts returns all posts; browsing is public
func (h *ForumHandler) ListPosts(c *gin.Context) {
	posts, err := h.forum.ListPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", posts)
}

// GetPost returns a single post; public
func (h *ForumHandler) GetPost(c *gin.Context) {
	post, err := h.forum.GetPost(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", post)
}

// AddComment attaches a comment to a post
func (h *ForumHandler) AddComment(c *gin.Context) {
	var req models.CommentCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	comment, err := h.forum.AddComment(c.Param("id"), c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "comment added", comment)
}

// ToggleLike flips the caller's like on a post
func (h *ForumHandler) ToggleLike(c *gin.Context) {
	liked, err := h.forum.ToggleLike(c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "post unliked"
	if liked {
		message = "post liked"
	}
	respondOK(c, message, gin.H{"liked": liked})
}

// DeleteComment removes a comment (comment author or admin)
func (h *ForumHandler) DeleteComment(c *gin.Context) {
	comment, err := h.forum.GetComment(c.Param("id"), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: comment.UserID}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.forum.DeleteComment(comment.PostID, comment.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "comment deleted", nil)
}

// DeletePost removes a post (author or admin)
func (h *ForumHandler) DeletePost(c *gin.Context) {
	post, err := h.forum.GetPost(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := policy.Decide(actorFrom(c), policy.ActionResourceMutate,
		policy.Resource{OwnerID: post.UserID}); err != nil {
		respondError(c, err)
		return
	}

	if err := h.forum.DeletePost(post.ID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "post deleted", nil)
}
