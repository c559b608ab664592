package poller

import (
	"context"

	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"
)

// Scanner derives the set of tasks to poll from the document. It keeps no state between scans.
type Scanner struct {
	doc    output.DocumentPort
	sel    entity.Selector
	logger output.LoggerPort
}

func NewScanner(doc output.DocumentPort, sel entity.Selector, logger output.LoggerPort) *Scanner {
	return &Scanner{doc: doc, sel: sel, logger: logger}
}

func (s *Scanner) Scan(ctx context.Context) (entity.ScanResult, error) {
	anchors, err := s.doc.Scan(ctx, s.sel)
	if err != nil {
		return nil, err
	}

	result := make(entity.ScanResult, len(anchors))
	for _, a := range anchors {
		taskID := a.TaskID
		if taskID == "" {
			taskID = a.ElementID
		}
		if taskID == "" {
			s.logger.Warn("Task anchor without identity skipped", "checksum", a.Checksum)
			continue
		}
		if _, dup := result[taskID]; dup {
			s.logger.Warn("Duplicate task anchor ignored", "task_id", taskID, "element_id", a.ElementID)
			continue
		}
		elementID := a.ElementID
		if elementID == "" {
			elementID = taskID
		}
		result[taskID] = entity.TaskRef{
			TaskID:    taskID,
			ElementID: elementID,
			Checksum:  a.Checksum,
		}
	}
	return result, nil
}
