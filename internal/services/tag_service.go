package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTagRequired  = errors.New("tag is required")
	ErrTagTooLong   = errors.New("tag is too long")
	ErrTagExists    = errors.New("tag already exists")
	ErrTagNotFound  = errors.New("tag not found")
	ErrNothingToTag = errors.New("title or description is required")
)

// TagService manages each user's tag vocabulary.
type TagService struct {
	tagRepo   repository.TagRepository
	aiService *AIService
}

// NewTagService creates a new TagService. aiService may be nil.
func NewTagService(tagRepo repository.TagRepository, aiService *AIService) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		aiService: aiService,
	}
}

// CreateTag adds a tag to the user's vocabulary
func (s *TagService) CreateTag(userID uint64, raw string) (*models.Tag, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return nil, ErrTagRequired
	}
	if len(value) > constants.MaxTagLength {
		return nil, ErrTagTooLong
	}

	if _, err := s.tagRepo.FindByUserAndTag(userID, value); err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check tag: %w", err)
	}

	tag := &models.Tag{Tag: value, UserID: userID}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// ListTags returns the user's tags, narrowed to a substring when query is set
func (s *TagService) ListTags(userID uint64, query string) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByUser(userID, query, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag owned by the user
func (s *TagService) DeleteTag(userID, tagID uint64) error {
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}
	if tag.UserID != userID {
		return ErrTagNotFound
	}
	if err := s.tagRepo.Delete(tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// SuggestTags proposes tags for a todo. Tags from the user's vocabulary that
// appear in the text come first, followed by model suggestions when an
// OpenAI key is configured. Model failures only drop the model part.
func (s *TagService) SuggestTags(ctx context.Context, userID uint64, title, description string) ([]string, error) {
	text := strings.ToLower(strings.TrimSpace(title + " " + description))
	if text == "" {
		return nil, ErrNothingToTag
	}

	known, err := s.tagRepo.ListByUser(userID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	vocabulary := make([]string, 0, len(known))
	suggestions := make([]string, 0, constants.MaxTagSuggestions)
	for _, t := range known {
		vocabulary = append(vocabulary, t.Tag)
		if strings.Contains(text, t.Tag) {
			suggestions = append(suggestions, t.Tag)
		}
	}

	if s.aiService != nil {
		generated, err := s.aiService.SuggestTags(ctx, title, description, vocabulary)
		if err != nil {
			log.Printf("tag suggestion via OpenAI failed: %v", err)
		} else {
			for _, g := range generated {
				if len(strings.TrimSpace(g)) <= constants.MaxTagLength {
					suggestions = append(suggestions, g)
				}
			}
		}
	}

	suggestions = utils.NormalizeTags(suggestions)
	if len(suggestions) > constants.MaxTagSuggestions {
		suggestions = suggestions[:constants.MaxTagSuggestions]
	}
	return suggestions, nil
}
