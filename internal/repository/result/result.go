package result

import (
	"context"

	"github.com/ytscout/ytscout/internal/model"
)

// Repository defines persistence for saved search results
type Repository interface {
	// SaveBatch stores a batch of result records, skipping rows already
	// present for the same video and keyword
	SaveBatch(ctx context.Context, records []*model.ResultRecord) error

	// List retrieves saved results with pagination; an empty keyword
	// returns results across all keywords
	List(ctx context.Context, keyword string, limit, offset int) ([]*model.ResultRecord, error)
}
