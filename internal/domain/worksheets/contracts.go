package worksheets

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// WorksheetRepository persists worksheets
type WorksheetRepository interface {
	Create(ctx context.Context, worksheet *Worksheet) error
	GetByID(ctx context.Context, worksheetID string) (*Worksheet, error)
	Update(ctx context.Context, worksheet *Worksheet) error
	ListForClient(ctx context.Context, clientID string, query *Query, page shared.Pagination) ([]*Worksheet, int64, error)
	ListForTherapist(ctx context.Context, therapistID string, query *Query, page shared.Pagination) ([]*Worksheet, int64, error)
	// MarkOverdue flags assigned worksheets due before now and returns them
	MarkOverdue(ctx context.Context, now time.Time) ([]*Worksheet, error)
}

// WorksheetService handles worksheet assignment and submission
type WorksheetService interface {
	Assign(ctx context.Context, therapistID string, input *AssignInput) (*Worksheet, error)
	ListForClient(ctx context.Context, clientID string, query *Query) (*shared.Page[*Worksheet], error)
	ListForTherapist(ctx context.Context, therapistID string, query *Query) (*shared.Page[*Worksheet], error)
	Get(ctx context.Context, userID, worksheetID string) (*Worksheet, error)
	Submit(ctx context.Context, clientID, worksheetID string, input *SubmitInput) (*Worksheet, error)
	Review(ctx context.Context, therapistID, worksheetID string, input *ReviewInput) (*Worksheet, error)
	MarkOverdue(ctx context.Context) (int, error)
}
