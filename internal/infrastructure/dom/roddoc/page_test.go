package roddoc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskwatch/internal/domain/entity"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"
)

const taskPage = `<!DOCTYPE html>
<html>
<body>
<table>
	<tr class="item-message info"><td>
		<div id="msg-1" class="task-message task-running" data-task_id="t-1" data-checksum="111">running</div>
	</td></tr>
	<tr class="item-message info"><td>
		<div id="msg-2" class="task-message task-ready" data-task_id="t-2" data-checksum="222">done</div>
	</td></tr>
</table>
</body>
</html>`

func TestDecodeAnchors(t *testing.T) {
	v := gson.NewFrom(`[
		{"id": "msg-1", "task_id": "t-1", "checksum": "111"},
		{"id": "", "task_id": "t-2", "checksum": ""}
	]`)

	assert.Equal(t, []entity.Anchor{
		{ElementID: "msg-1", TaskID: "t-1", Checksum: "111"},
		{TaskID: "t-2"},
	}, decodeAnchors(v))
	assert.Empty(t, decodeAnchors(gson.NewFrom(`[]`)))
}

func TestOpen_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "javascript:alert(1)", "ftp://example.com"} {
		_, err := Open(context.Background(), DefaultConfig(), u)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
}

func openTestPage(t *testing.T) *Page {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests disabled in short mode")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no browser found")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, taskPage)
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.NoSandbox = true
	page, err := Open(context.Background(), cfg, server.URL+"/admin/tasks/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = page.Close() })

	require.NoError(t, page.Ready(context.Background()))
	return page
}

func TestPage_ScanReplaceReclassify(t *testing.T) {
	page := openTestPage(t)
	ctx := context.Background()
	sel := entity.Selector{
		RowClass:     entity.DefaultRowClass,
		Markers:      entity.DefaultMarkerSet(),
		TaskIDAttr:   entity.DefaultTaskIDAttr,
		ChecksumAttr: entity.DefaultChecksumAttr,
	}

	origin, err := page.Origin(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^http://127\.0\.0\.1:\d+$`, origin)

	anchors, err := page.Scan(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []entity.Anchor{{ElementID: "msg-1", TaskID: "t-1", Checksum: "111"}}, anchors)

	target := entity.Target{Key: "t-1", TaskIDAttr: entity.DefaultTaskIDAttr}
	ok, err := page.Replace(ctx, target, `<div id="msg-1" class="task-message task-ready task-failed" data-task_id="t-1">boom</div>`)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = page.ReclassifyRow(ctx, target, entity.RowChange{
		RowClass: entity.DefaultRowClass,
		Add:      "error",
		Remove:   []string{"info", "success", "debug", "warning"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	anchors, err = page.Scan(ctx, sel)
	require.NoError(t, err)
	assert.Empty(t, anchors)

	html, err := page.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, `class="item-message error"`)
	assert.Contains(t, html, ">boom</div>")

	ok, err = page.Replace(ctx, entity.Target{Key: "missing"}, `<div></div>`)
	require.NoError(t, err)
	assert.False(t, ok)
}
