package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"taskwatch/internal/domain/entity"
	"taskwatch/internal/infrastructure/dom/htmldoc"
	"taskwatch/internal/infrastructure/logger"

	"github.com/stretchr/testify/require"
)

const testOrigin = "http://admin.local"

type fetchFunc func(call int, url string) (entity.PollResponse, error)

type fakeFetcher struct {
	mu       sync.Mutex
	urls     []string
	fn       fetchFunc
	inflight int
	maxSeen  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (entity.PollResponse, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	call := len(f.urls)
	f.inflight++
	if f.inflight > f.maxSeen {
		f.maxSeen = f.inflight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	if f.fn == nil {
		return entity.PollResponse{}, nil
	}
	return f.fn(call, url)
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Interval = 5 * time.Millisecond
	return cfg
}

func newDoc(t *testing.T, page string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.ParseString(page, testOrigin)
	require.NoError(t, err)
	return doc
}

func newPoller(t *testing.T, cfg Config, doc *htmldoc.Document, f *fakeFetcher) *Poller {
	t.Helper()
	p, err := New(cfg, doc, f, logger.NewNop())
	require.NoError(t, err)
	return p
}

func render(t *testing.T, doc *htmldoc.Document) string {
	t.Helper()
	out, err := doc.HTML(context.Background())
	require.NoError(t, err)
	return out
}

const twoTaskPage = `<html><body><table>
<tr class="item-message info"><td><div id="msg-a" class="task-message task-running" data-task_id="a" data-checksum="1">running</div></td></tr>
<tr class="item-message info"><td><div id="msg-b" class="task-message task-waiting" data-task_id="b" data-checksum="2">waiting</div></td></tr>
<tr class="item-message success"><td><div id="msg-c" class="task-message task-ready" data-task_id="c" data-checksum="3">done</div></td></tr>
</table></body></html>`
