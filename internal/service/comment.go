package service

import (
	"context"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const maxCommentLength = 5000

type CommentService struct {
	comments *repository.CommentRepository
	policy   *bluemonday.Policy
}

func NewCommentService(comments *repository.CommentRepository) *CommentService {
	return &CommentService{comments: comments, policy: bluemonday.StrictPolicy()}
}

func (s *CommentService) List(ctx context.Context, projectID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, classify(err, "Failed to list comments")
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load comment")
	}
	return c, nil
}

// Create stores a comment with all markup stripped from its body.
func (s *CommentService) Create(ctx context.Context, projectID, authorID uuid.UUID, body string) (*model.Comment, error) {
	clean := strings.TrimSpace(s.policy.Sanitize(body))
	if clean == "" {
		return nil, apperr.Validation("comment body is required")
	}
	if len(clean) > maxCommentLength {
		return nil, apperr.Validation("comment is longer than %d characters", maxCommentLength)
	}

	comment := &model.Comment{ProjectID: projectID, AuthorID: authorID, Body: clean}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, classify(err, "Failed to create comment")
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return classify(err, "Failed to delete comment")
	}
	return nil
}
