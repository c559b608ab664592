package poller

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"taskwatch/internal/application/port/input"
	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.TaskPoller = (*Poller)(nil)

var ErrAlreadyRunning = errors.New("poller is already running")

// Poller is the scan -> request -> fetch -> reconcile loop. At most one poll is in flight:
// the next wait starts only after the previous fetch has returned.
type Poller struct {
	cfg        Config
	doc        output.DocumentPort
	fetcher    output.TaskFetcher
	logger     output.LoggerPort
	scanner    *Scanner
	reconciler *Reconciler
	running    atomic.Bool
}

func New(cfg Config, doc output.DocumentPort, fetcher output.TaskFetcher, logger output.LoggerPort) (*Poller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	return &Poller{
		cfg:        cfg,
		doc:        doc,
		fetcher:    fetcher,
		logger:     logger,
		scanner:    NewScanner(doc, cfg.selector(), logger),
		reconciler: NewReconciler(doc, cfg, logger),
	}, nil
}

// Run waits for the document to be ready and polls until the page holds no
// non-terminal task. Cancelling ctx is the only way to stop it earlier.
func (p *Poller) Run(ctx context.Context) (*entity.PollReport, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer p.running.Store(false)

	report := &entity.PollReport{RunID: uuid.NewString()}
	log := p.logger.WithField("run_id", report.RunID)

	if err := p.doc.Ready(ctx); err != nil {
		return report, fmt.Errorf("document not ready: %w", err)
	}

	origin := ""
	if p.cfg.BaseURL == "" {
		var err error
		if origin, err = p.doc.Origin(ctx); err != nil {
			return report, fmt.Errorf("resolve origin: %w", err)
		}
	}
	endpoint, err := p.cfg.Endpoint(origin)
	if err != nil {
		return report, err
	}

	log.Info("Polling started", "endpoint", endpoint, "interval", p.cfg.Interval.String(), "markers", p.cfg.Markers.String())

	for {
		scan, err := p.scanner.Scan(ctx)
		if err != nil {
			return report, fmt.Errorf("scan: %w", err)
		}
		if scan.Empty() {
			log.Info("No pending tasks left, polling stopped", "cycles", report.Cycles, "failures", report.Failures)
			return report, nil
		}

		if err := sleep(ctx, p.cfg.Interval); err != nil {
			return report, err
		}

		p.cycle(ctx, log, endpoint, scan, report)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}
}

func (p *Poller) cycle(ctx context.Context, log output.LoggerPort, endpoint string, scan entity.ScanResult, report *entity.PollReport) {
	report.Cycles++
	log = log.WithField("cycle", report.Cycles)

	url, err := BuildURL(endpoint, p.cfg.Protocol, scan)
	if err != nil {
		report.Failures++
		log.Error("Failed to build poll url", "error", err)
		return
	}
	log.Debug("Polling tasks", "tasks", len(scan), "url", url)

	resp, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		report.Failures++
		var fe *entity.FetchError
		if errors.As(err, &fe) {
			log.Error("Poll request failed", "diag", fe.Diagnostic(), "status", fe.StatusCode, "status_text", fe.StatusText, "error", err)
		} else {
			log.Error("Poll request failed", "error", err)
		}
		return
	}

	res := p.reconciler.Apply(ctx, resp)
	report.Add(res)
	log.Debug("Cycle reconciled", "received", len(resp), "replaced", res.Replaced,
		"reclassified", res.Reclassified, "skipped", res.Skipped, "errors", res.Errors)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
