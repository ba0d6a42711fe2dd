package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// commentService handles comment-related business logic.
type commentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentServicer.
func NewCommentService(db *gorm.DB) CommentServicer {
	return &commentService{db: db}
}

// ListComments returns all comments across all stocks.
func (s *commentService) ListComments() ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Order("id ASC").Find(&comments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// GetCommentByID returns a comment with its stock association resolved.
func (s *commentService) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Stock").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &comment, nil
}

// CreateComment persists a new comment. When stockID is set, the referenced
// stock must exist; otherwise nothing is persisted and the caller gets a
// reference error it can act on.
func (s *commentService) CreateComment(stockID *uint, title, content string) (*models.Comment, error) {
	if err := validateCommentInput(title, content); err != nil {
		return nil, err
	}

	if stockID != nil {
		var count int64
		if err := s.db.Model(&models.Stock{}).Where("id = ?", *stockID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrInvalidStockRef
		}
	}

	comment := &models.Comment{
		Title:   title,
		Content: content,
		StockID: stockID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return comment, nil
}

// UpdateComment replaces the title and content of an existing comment.
// The creation timestamp and the stock reference stay untouched.
func (s *commentService) UpdateComment(id uint, title, content string) (*models.Comment, error) {
	if err := validateCommentInput(title, content); err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	comment.Title = title
	comment.Content = content
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &comment, nil
}

// DeleteComment removes a comment and returns the prior value so the caller
// can show what was deleted.
func (s *commentService) DeleteComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&models.Comment{}, id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &comment, nil
}

// validateCommentInput enforces title and content length invariants.
func validateCommentInput(title, content string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Title must be 3 characters or more")
	}
	if len(title) > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Title cannot be more than 100 characters")
	}
	if len(content) < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Content must contain at least 1 character")
	}
	if len(content) > 240 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Content cannot be more than 240 characters")
	}
	return nil
}
