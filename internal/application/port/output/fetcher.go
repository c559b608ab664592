package output

import (
	"context"

	"taskwatch/internal/domain/entity"
)

// TaskFetcher performs one poll request. Failures come back as *entity.FetchError.
type TaskFetcher interface {
	Fetch(ctx context.Context, url string) (entity.PollResponse, error)
}
