package output

import (
	"context"

	"taskwatch/internal/domain/entity"
)

//go:generate go tool mockgen -destination=mocks/document_mock.go -package=mocks taskwatch/internal/application/port/output DocumentPort

// DocumentPort is the page the poller keeps in sync. It is the only system of record:
// nothing about tasks is stored outside of it.
type DocumentPort interface {
	// Ready blocks until the document is parsed and can be queried.
	Ready(ctx context.Context) error
	Origin(ctx context.Context) (string, error)

	Scan(ctx context.Context, sel entity.Selector) ([]entity.Anchor, error)
	// Replace swaps the target element for the parsed fragment. It reports false
	// when the target is not in the document.
	Replace(ctx context.Context, target entity.Target, fragment string) (bool, error)
	ReclassifyRow(ctx context.Context, target entity.Target, change entity.RowChange) (bool, error)

	HTML(ctx context.Context) (string, error)
}
