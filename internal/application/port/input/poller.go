package input

import (
	"context"

	"taskwatch/internal/domain/entity"
)

type TaskPoller interface {
	// Run blocks until no non-terminal task is left on the page or ctx is done.
	Run(ctx context.Context) (*entity.PollReport, error)
}
