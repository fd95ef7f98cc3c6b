// Package service contains the business rules sitting between the HTTP
// handlers and the repository.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akhalil/essam-memorial/internal/apperror"
	"github.com/akhalil/essam-memorial/internal/model"
	"github.com/akhalil/essam-memorial/internal/repository"
)

const (
	// MaxTextLength bounds a single prayer. Long enough for any sincere
	// dua, short enough to keep the wall readable.
	MaxTextLength = 2000
	MaxNameLength = 100
)

// PrayerService validates submissions and orchestrates the repository.
type PrayerService struct {
	repo   repository.PrayerRepository
	logger *slog.Logger
}

// NewPrayerService creates a PrayerService.
func NewPrayerService(repo repository.PrayerRepository, logger *slog.Logger) *PrayerService {
	return &PrayerService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a new prayer. Text must be non-empty after
// trimming; an empty or whitespace-only text is rejected before any store
// access. Name is optional and trimmed.
func (s *PrayerService) Create(ctx context.Context, text, name string) (*model.Prayer, error) {
	text = strings.TrimSpace(text)
	name = strings.TrimSpace(name)

	if text == "" {
		return nil, apperror.ValidationFailed("text", "Prayer text is required")
	}
	if len(text) > MaxTextLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("prayer text must be %d characters or less", MaxTextLength))
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	}

	prayer := &model.Prayer{
		Text: text,
		Name: name,
	}

	if err := s.repo.Create(ctx, prayer); err != nil {
		s.logger.Error("failed to create prayer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating prayer: %w", err)
	}

	s.logger.Info("prayer created",
		slog.String("id", prayer.ID),
		slog.Bool("anonymous", prayer.Name == ""),
	)

	return prayer, nil
}

// List returns all prayers, newest first, capped at the repository's
// listing limit.
func (s *PrayerService) List(ctx context.Context) ([]model.Prayer, error) {
	prayers, err := s.repo.List(ctx, repository.ListOptions{Limit: repository.MaxListLimit})
	if err != nil {
		s.logger.Error("failed to list prayers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing prayers: %w", err)
	}

	return prayers, nil
}

// Delete removes the prayer with the given id. A missing id is a
// validation error; an unknown id propagates as ErrNotFound.
func (s *PrayerService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "Prayer ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("prayer deleted", slog.String("id", id))
	return nil
}
