package reviews

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// ReviewRepository persists reviews and their helpful votes
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, reviewID string) (*Review, error)
	// ExistsForMeeting reports whether the client already reviewed the meeting
	ExistsForMeeting(ctx context.Context, clientID, meetingID string) (bool, error)
	Update(ctx context.Context, review *Review) error
	// Delete removes the review together with its helpful votes
	Delete(ctx context.Context, reviewID string) error
	List(ctx context.Context, query *Query, page shared.Pagination) ([]*Review, int64, error)
	// RatingCounts counts the approved reviews of the therapist per rating
	RatingCounts(ctx context.Context, therapistID string) (map[int]int64, error)
	// HelpfulVotes sums the helpful votes of the therapist's approved reviews
	HelpfulVotes(ctx context.Context, therapistID string) (int64, error)
	// ListApprovedSince returns approved reviews of the therapist created at or after since, newest first
	ListApprovedSince(ctx context.Context, therapistID string, since time.Time) ([]*Review, error)
	// AddHelpfulVote stores the vote once and returns whether it was new and the review's helpful count
	AddHelpfulVote(ctx context.Context, vote *HelpfulVote) (bool, int, error)
}

// ReviewService handles therapist reviews
type ReviewService interface {
	Create(ctx context.Context, clientID string, input *CreateInput) (*Review, error)
	Update(ctx context.Context, clientID, reviewID string, input *UpdateInput) (*Review, error)
	Delete(ctx context.Context, clientID, reviewID string) error
	// List returns reviews visible to the viewer. Anonymous authors are hidden from other users.
	List(ctx context.Context, viewerID, viewerRole string, query *Query) (*List, error)
	GetStats(ctx context.Context, therapistID string) (*Stats, error)
	MarkHelpful(ctx context.Context, userID, reviewID string) (*HelpfulResult, error)
	Moderate(ctx context.Context, moderatorID, reviewID string, input *ModerateInput) (*Review, error)
}
