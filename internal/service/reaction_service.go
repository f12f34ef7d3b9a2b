package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
)

// ReactionService handles like/dislike toggles on videos, comments and
// tweets.
type ReactionService struct {
	reactions repository.ReactionRepository
	events    DomainEventPublisher
}

// NewReactionService creates a new ReactionService. events may be nil when
// no broker is configured.
func NewReactionService(reactions repository.ReactionRepository, events DomainEventPublisher) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		events:    events,
	}
}

// ToggleResult reports the state of one reaction after a toggle.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ToggleResult struct {
	TargetKind models.TargetKind `json:"targetKind"`
	TargetID   uuid.UUID         `json:"targetId"`
	Liked      bool              `json:"liked"`
	Active     bool              `json:"active"`
}

// Toggle flips the actor's reaction of the given polarity on the target: an
// existing same-polarity reaction is removed, otherwise a new one is
// created. The opposite polarity is left untouched, so a like and a dislike
// from the same actor can coexist.
func (s *ReactionService) Toggle(ctx context.Context, actor uuid.UUID, kind models.TargetKind, targetID uuid.UUID, liked bool) (*ToggleResult, error) {
	result := &ToggleResult{
		TargetKind: kind,
		TargetID:   targetID,
		Liked:      liked,
	}

	existing, err := s.reactions.Find(ctx, kind, targetID, actor, liked)
	switch {
	case err == nil:
		if err := s.reactions.Delete(ctx, existing.ID); err != nil && !db.IsNotFound(err) {
			return nil, &ProcessingError{Message: "failed to remove reaction", Cause: err}
		}
		result.Active = false

	case db.IsNotFound(err):
		reaction := models.NewReaction(actor, kind, targetID, liked)
		if err := s.reactions.Create(ctx, reaction); err != nil {
			switch {
			case db.IsForeignKeyViolation(err):
				return nil, &NotFoundError{Resource: string(kind)}
			case db.IsDuplicateKey(err):
				// A concurrent toggle won the race; the reaction exists.
			default:
				return nil, &ProcessingError{Message: "failed to persist reaction", Cause: err}
			}
		}
		result.Active = true

	default:
		return nil, &ProcessingError{Message: "failed to look up reaction", Cause: err}
	}

	publishEvent(ctx, s.events, EventReactionToggled, result)

	return result, nil
}
