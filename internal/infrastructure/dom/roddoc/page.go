// Package roddoc keeps a live Chromium page in sync through go-rod.
package roddoc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.DocumentPort = (*Page)(nil)

const defaultTimeout = 10 * time.Second

var ErrInvalidURL = errors.New("invalid page url")

type Config struct {
	Headless  bool
	NoSandbox bool
	// ControlURL connects to an already running browser instead of launching one.
	ControlURL string
	// Timeout bounds every single page call.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  defaultTimeout,
	}
}

type Page struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

// Open launches (or connects to) a browser and navigates to pageURL.
func Open(ctx context.Context, cfg Config, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, pageURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().
			Headless(cfg.Headless).
			NoSandbox(cfg.NoSandbox).
			Delete("use-mock-keychain")
		if controlURL, err = l.Context(ctx).Launch(); err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		p := &Page{browser: browser, launcher: l}
		p.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Page{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (p *Page) call(ctx context.Context) *rod.Page {
	return p.page.Context(ctx).Timeout(p.timeout)
}

func (p *Page) Ready(ctx context.Context) error {
	if err := p.page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (p *Page) Origin(ctx context.Context) (string, error) {
	info, err := p.call(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	u, err := url.Parse(info.URL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: page has no origin: %q", ErrInvalidURL, info.URL)
	}
	return u.Scheme + "://" + u.Host, nil
}

func (p *Page) Scan(ctx context.Context, sel entity.Selector) ([]entity.Anchor, error) {
	res, err := p.call(ctx).Eval(scanJS, sel.RowClass, sel.Markers.Classes(), sel.TaskIDAttr, sel.ChecksumAttr)
	if err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}
	return decodeAnchors(res.Value), nil
}

func (p *Page) Replace(ctx context.Context, target entity.Target, fragment string) (bool, error) {
	res, err := p.call(ctx).Eval(replaceJS, target.Key, target.TaskIDAttr, fragment)
	if err != nil {
		return false, fmt.Errorf("replace %q: %w", target.Key, err)
	}
	return res.Value.Bool(), nil
}

func (p *Page) ReclassifyRow(ctx context.Context, target entity.Target, change entity.RowChange) (bool, error) {
	remove := change.Remove
	if remove == nil {
		remove = []string{}
	}
	res, err := p.call(ctx).Eval(reclassifyJS, target.Key, target.TaskIDAttr, change.RowClass, change.Add, remove)
	if err != nil {
		return false, fmt.Errorf("reclassify row of %q: %w", target.Key, err)
	}
	return res.Value.Bool(), nil
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.call(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

func (p *Page) Close() error {
	var err error
	if p.browser != nil {
		err = p.browser.Close()
	}
	if p.launcher != nil {
		p.launcher.Kill()
		p.launcher.Cleanup()
	}
	return err
}

func decodeAnchors(v gson.JSON) []entity.Anchor {
	items := v.Arr()
	anchors := make([]entity.Anchor, 0, len(items))
	for _, item := range items {
		anchors = append(anchors, entity.Anchor{
			ElementID: item.Get("id").Str(),
			TaskID:    item.Get("task_id").Str(),
			Checksum:  item.Get("checksum").Str(),
		})
	}
	return anchors
}
