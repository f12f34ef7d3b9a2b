package models

import (
	"time"

	"github.com/google/uuid"
)

// TargetKind identifies the kind of content a reaction points at.
type TargetKind string

// TargetKind constants define the reactable content kinds.
const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// ParseTargetKind parses a path segment into a TargetKind.
func ParseTargetKind(s string) (TargetKind, bool) {
	switch TargetKind(s) {
	case TargetVideo, TargetComment, TargetTweet:
		return TargetKind(s), true
	default:
		return "", false
	}
}

// Reaction represents a like (Liked = true) or dislike (Liked = false) by a
// user on exactly one target.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Reaction struct {
	ID        uuid.UUID  `json:"id"`
	ReactorID uuid.UUID  `json:"reactorId"`
	Liked     bool       `json:"liked"`
	VideoID   *uuid.UUID `json:"videoId,omitempty"`
	CommentID *uuid.UUID `json:"commentId,omitempty"`
	TweetID   *uuid.UUID `json:"tweetId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewReaction creates a reaction on the given target.
func NewReaction(reactorID uuid.UUID, kind TargetKind, targetID uuid.UUID, liked bool) *Reaction {
	r := &Reaction{
		ID:        uuid.New(),
		ReactorID: reactorID,
		Liked:     liked,
		CreatedAt: time.Now(),
	}
	switch kind {
	case TargetVideo:
		r.VideoID = &targetID
	case TargetComment:
		r.CommentID = &targetID
	case TargetTweet:
		r.TweetID = &targetID
	}
	return r
}
