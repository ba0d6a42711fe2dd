package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// CommentHandler handles comment requests.
type CommentHandler struct {
	commentService services.CommentServicer
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService services.CommentServicer) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the payload for creating a comment.
// StockID is optional: a comment may exist unattached, but when set the
// referenced stock must exist.
type CreateCommentRequest struct {
	StockID *uint  `json:"stock_id"`
	Title   string `json:"title" binding:"required,min=3,max=100"`
	Content string `json:"content" binding:"required,min=1,max=240"`
}

// UpdateCommentRequest represents the payload for updating a comment.
type UpdateCommentRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=100"`
	Content string `json:"content" binding:"required,min=1,max=240"`
}

// ListComments handles listing all comments.
// @Summary     List comments
// @Description Get all comments across all stocks
// @Tags        comments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Comment "All comments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListComments()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// GetComment handles retrieving a specific comment.
// @Summary     Get comment by ID
// @Description Get a comment with its stock association resolved
// @Tags        comments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Comment ID"
// @Success     200 {object} models.Comment "Comment details"
// @Failure     404 {object} ErrorResponse "Comment not found"
// @Router      /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comment, err := h.commentService.GetCommentByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// CreateComment handles creating a comment, optionally attached to a stock.
// @Summary     Create comment
// @Description Create a comment; when stock_id is set the stock must exist
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCommentRequest true "Comment details"
// @Success     201 {object} models.Comment "Comment created"
// @Failure     400 {object} ErrorResponse "Invalid input or bad stock reference"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comment, err := h.commentService.CreateComment(req.StockID, req.Title, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// UpdateComment handles replacing a comment's title and content.
// @Summary     Update comment
// @Description Update a comment's title and content only
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Comment ID"
// @Param       request body UpdateCommentRequest true "New title and content"
// @Success     200 {object} models.Comment "Comment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Comment not found"
// @Router      /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comment, err := h.commentService.UpdateComment(id, req.Title, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles removing a comment and returns the deleted record.
// @Summary     Delete comment
// @Description Delete a comment and return its prior value
// @Tags        comments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Comment ID"
// @Success     200 {object} models.Comment "Deleted comment"
// @Failure     404 {object} ErrorResponse "Comment not found"
// @Router      /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comment, err := h.commentService.DeleteComment(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}
