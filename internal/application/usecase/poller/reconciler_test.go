package poller

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taskwatch/internal/application/port/output/mocks"
	"taskwatch/internal/domain/entity"
	"taskwatch/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestReconciler_ReplacesWholeElement(t *testing.T) {
	doc := newDoc(t, twoTaskPage)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	res := r.Apply(context.Background(), entity.PollResponse{
		"msg-a": `<div id="msg-a" class="task-message task-ready" data-task_id="a" data-checksum="9">finished</div>`,
	})

	assert.Equal(t, entity.ReconcileResult{Replaced: 1}, res)
	out := render(t, doc)
	assert.Contains(t, out, "finished")
	assert.NotContains(t, out, ">running<")
}

func TestReconciler_Idempotent(t *testing.T) {
	resp := entity.PollResponse{
		"msg-a": `<div id="msg-a" class="task-message task-ready task-failed" data-task_id="a">failed</div>`,
		"msg-b": `<div id="msg-b" class="task-message task-running" data-task_id="b" data-checksum="5">50%</div>`,
	}
	doc := newDoc(t, twoTaskPage)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	r.Apply(context.Background(), resp)
	once := render(t, doc)
	r.Apply(context.Background(), resp)

	assert.Equal(t, once, render(t, doc))
}

func TestReconciler_FailureReclassifiesRow(t *testing.T) {
	doc := newDoc(t, twoTaskPage)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	res := r.Apply(context.Background(), entity.PollResponse{
		"msg-a": `<div id="msg-a" class="task-message task-ready task-failed" data-task_id="a">boom</div>`,
	})

	assert.Equal(t, 1, res.Replaced)
	assert.Equal(t, 1, res.Reclassified)
	out := render(t, doc)
	assert.Contains(t, out, `<tr class="item-message error"><td><div id="msg-a"`)
	assert.Equal(t, 1, strings.Count(out, `class="item-message info"`))
}

func TestReconciler_FailureFoundByTaskID(t *testing.T) {
	doc := newDoc(t, twoTaskPage)
	cfg := DefaultConfig()
	cfg.Protocol = ProtocolFlat
	r := NewReconciler(doc, cfg, logger.NewNop())

	res := r.Apply(context.Background(), entity.PollResponse{
		"b": `<div class="task-message task-ready task-failed" data-task_id="b">revoked</div>`,
	})

	assert.Equal(t, entity.ReconcileResult{Replaced: 1, Reclassified: 1}, res)
	assert.Contains(t, render(t, doc), `<tr class="item-message error"><td><div class="task-message task-ready task-failed" data-task_id="b">`)
}

func TestReconciler_SuccessKeepsSeverity(t *testing.T) {
	doc := newDoc(t, twoTaskPage)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	r.Apply(context.Background(), entity.PollResponse{
		"msg-a": `<div id="msg-a" class="task-message task-ready">ok</div>`,
	})

	assert.NotContains(t, render(t, doc), "error")
}

func TestReconciler_UnknownAndEmptyKeysIgnored(t *testing.T) {
	doc := newDoc(t, twoTaskPage)
	before := render(t, doc)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	res := r.Apply(context.Background(), entity.PollResponse{
		"gone":  `<div id="gone" class="task-ready">x</div>`,
		"msg-a": "  ",
	})

	assert.Equal(t, entity.ReconcileResult{Skipped: 2}, res)
	assert.Equal(t, before, render(t, doc))
}

func TestReconciler_DocumentErrorsAreCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocks.NewMockDocumentPort(ctrl)
	r := NewReconciler(doc, DefaultConfig(), logger.NewNop())

	doc.EXPECT().
		Replace(gomock.Any(), entity.Target{Key: "a", TaskIDAttr: entity.DefaultTaskIDAttr}, gomock.Any()).
		Return(false, errors.New("page crashed"))
	doc.EXPECT().
		Replace(gomock.Any(), entity.Target{Key: "b", TaskIDAttr: entity.DefaultTaskIDAttr}, gomock.Any()).
		Return(true, nil)
	doc.EXPECT().
		ReclassifyRow(gomock.Any(), entity.Target{Key: "msg-b", TaskIDAttr: entity.DefaultTaskIDAttr}, entity.RowChange{
			RowClass: "item-message",
			Add:      "error",
			Remove:   []string{"info", "success", "debug", "warning"},
		}).
		Return(true, nil)

	res := r.Apply(context.Background(), entity.PollResponse{
		"a": `<div id="msg-a">x</div>`,
		"b": `<div id="msg-b" class="task-failed">x</div>`,
	})

	assert.Equal(t, entity.ReconcileResult{Replaced: 1, Reclassified: 1, Errors: 1}, res)
}
