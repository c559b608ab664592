// Package htmldoc is an in-memory page built on golang.org/x/net/html.
package htmldoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"

	"golang.org/x/net/html"
)

var _ output.DocumentPort = (*Document)(nil)

var ErrNoOrigin = errors.New("document has no origin")

type Document struct {
	mu     sync.RWMutex
	root   *html.Node
	origin string
}

// Parse reads a full page. origin is the scheme://host the page was served from.
func Parse(r io.Reader, origin string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		root:   root,
		origin: strings.TrimRight(origin, "/"),
	}, nil
}

func ParseString(s, origin string) (*Document, error) {
	return Parse(strings.NewReader(s), origin)
}

func ParseFile(path, origin string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return Parse(f, origin)
}

// Ready returns at once: a parsed tree is always ready for queries.
func (d *Document) Ready(ctx context.Context) error {
	return ctx.Err()
}

func (d *Document) Origin(ctx context.Context) (string, error) {
	if d.origin == "" {
		return "", ErrNoOrigin
	}
	return d.origin, nil
}

func (d *Document) Scan(ctx context.Context, sel entity.Selector) ([]entity.Anchor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var anchors []entity.Anchor
	var walk func(n *html.Node, inRow bool)
	walk = func(n *html.Node, inRow bool) {
		if n.Type == html.ElementNode {
			cls := classes(n)
			if sel.Markers.Matches(cls) && (sel.RowClass == "" || inRow) {
				id, _ := attr(n, "id")
				taskID, _ := attr(n, sel.TaskIDAttr)
				checksum, _ := attr(n, sel.ChecksumAttr)
				anchors = append(anchors, entity.Anchor{
					ElementID: id,
					TaskID:    taskID,
					Checksum:  checksum,
				})
			}
			if sel.RowClass != "" && isOneOf(sel.RowClass, cls...) {
				inRow = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inRow)
		}
	}
	walk(d.root, false)

	return anchors, nil
}

func (d *Document) Replace(ctx context.Context, target entity.Target, fragment string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.locate(target)
	if n == nil {
		return false, nil
	}

	parent := n.Parent
	fragCtx := parent
	if parent.Type != html.ElementNode {
		fragCtx = nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), fragCtx)
	if err != nil {
		return false, fmt.Errorf("parse fragment for %q: %w", target.Key, err)
	}

	for _, c := range nodes {
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return true, nil
}

func (d *Document) ReclassifyRow(ctx context.Context, target entity.Target, change entity.RowChange) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.locate(target)
	if n == nil {
		return false, nil
	}
	row := closest(n, change.RowClass)
	if row == nil {
		return false, nil
	}

	kept := make([]string, 0, len(classes(row))+1)
	for _, c := range classes(row) {
		if isOneOf(c, change.Remove...) || c == change.Add {
			continue
		}
		kept = append(kept, c)
	}
	if change.Add != "" {
		kept = append(kept, change.Add)
	}
	setAttr(row, "class", strings.Join(kept, " "))
	return true, nil
}

func (d *Document) HTML(ctx context.Context) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return renderNode(d.root), nil
}

// WriteTo renders the current tree.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	s, _ := d.HTML(context.Background())
	n, err := io.WriteString(w, s)
	return int64(n), err
}

func (d *Document) locate(target entity.Target) *html.Node {
	if target.Key == "" {
		return nil
	}
	n := findElement(d.root, func(n *html.Node) bool {
		id, _ := attr(n, "id")
		return id == target.Key
	})
	if n != nil || target.TaskIDAttr == "" {
		return n
	}
	return findElement(d.root, func(n *html.Node) bool {
		v, ok := attr(n, target.TaskIDAttr)
		return ok && v == target.Key
	})
}
