package poller

import (
	"context"
	"strings"

	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"
)

// Reconciler applies a poll response to the document by whole-node replacement.
type Reconciler struct {
	doc    output.DocumentPort
	cfg    Config
	logger output.LoggerPort
}

func NewReconciler(doc output.DocumentPort, cfg Config, logger output.LoggerPort) *Reconciler {
	return &Reconciler{doc: doc, cfg: cfg, logger: logger}
}

// Apply never fails the cycle: document errors are logged and counted.
func (r *Reconciler) Apply(ctx context.Context, resp entity.PollResponse) entity.ReconcileResult {
	var res entity.ReconcileResult

	for _, key := range resp.Keys() {
		if ctx.Err() != nil {
			return res
		}
		fragment := resp[key]
		if strings.TrimSpace(fragment) == "" {
			res.Skipped++
			continue
		}

		target := entity.Target{Key: key, TaskIDAttr: r.cfg.TaskIDAttr}
		replaced, err := r.doc.Replace(ctx, target, fragment)
		if err != nil {
			r.logger.Error("Failed to replace task element", "key", key, "error", err)
			res.Errors++
			continue
		}
		if !replaced {
			r.logger.Debug("Task element no longer on page", "key", key)
			res.Skipped++
			continue
		}
		res.Replaced++

		root, ok := inspectFragment(fragment, r.cfg.TaskIDAttr)
		if !ok || !root.hasClass(r.cfg.FailureMarker) {
			continue
		}
		if r.markFailed(ctx, r.rowTarget(key, root)) {
			res.Reclassified++
		}
	}
	return res
}

// rowTarget finds the replacement node again: its own id, then its task id, then the response key.
func (r *Reconciler) rowTarget(key string, root fragmentRoot) entity.Target {
	switch {
	case root.ID != "":
		key = root.ID
	case root.TaskID != "":
		key = root.TaskID
	}
	return entity.Target{Key: key, TaskIDAttr: r.cfg.TaskIDAttr}
}

func (r *Reconciler) markFailed(ctx context.Context, target entity.Target) bool {
	if r.cfg.RowClass == "" || r.cfg.FailureClass == "" {
		return false
	}
	ok, err := r.doc.ReclassifyRow(ctx, target, entity.RowChange{
		RowClass: r.cfg.RowClass,
		Add:      r.cfg.FailureClass,
		Remove:   r.cfg.SeverityClasses,
	})
	if err != nil {
		r.logger.Error("Failed to mark task row as failed", "key", target.Key, "error", err)
		return false
	}
	return ok
}
