package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ForumHandler struct {
	forumService service.ForumService
	log          *zap.Logger
}

func NewForumHandler(forumService service.ForumService, log *zap.Logger) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
		log:          log,
	}
}

// --- DTOs ---
type createPostRequest struct {
	Title    string      `json:"title" binding:"required"`
	Content  string      `json:"content" binding:"required"`
	Category string      `json:"category"`
	Author   string      `json:"author" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Role     domain.Role `json:"role"`
}

type voteRequest struct {
	VoteType domain.VoteType `json:"voteType" binding:"required"`
}

// CreatePost handles POST /postsForum.
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), &domain.ForumPost{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostIncomplete) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("failed to create forum post", zap.String("author", req.Author), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to create post.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": post.ID.Hex(), "post": post})
}

// ListPosts handles GET /postsForum (paginated).
func (h *ForumHandler) ListPosts(c *gin.Context) {
	page, limit := pageParams(c)
	posts, pages, err := h.forumService.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to list forum posts", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve posts.")
		return
	}
	if posts == nil {
		posts = []domain.ForumPost{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts, "totalPages": pages})
}

// LatestPosts handles GET /latestPostsForum.
func (h *ForumHandler) LatestPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLatestPostsLimit)))
	posts, err := h.forumService.LatestPosts(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to list latest posts", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve posts.")
		return
	}
	if posts == nil {
		posts = []domain.ForumPost{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// GetPost handles GET /forum/:id.
func (h *ForumHandler) GetPost(c *gin.Context) {
	post, err := h.forumService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondForumError(c, err, "Failed to retrieve post.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// Vote handles PATCH /postsForum/:postId/vote.
func (h *ForumHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	post, err := h.forumService.Vote(c.Request.Context(), c.Param("postId"), req.VoteType)
	if err != nil {
		h.respondForumError(c, err, "Failed to record vote.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Vote recorded",
		"upvotes":   post.Upvotes,
		"downvotes": post.Downvotes,
	})
}

// respondForumError maps forum service errors to HTTP codes.
func (h *ForumHandler) respondForumError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidObjectID), errors.Is(err, service.ErrInvalidVote):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPostNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error("forum error", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
