package poller

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type fragmentRoot struct {
	ID      string
	TaskID  string
	Classes []string
}

func (f fragmentRoot) hasClass(class string) bool {
	if class == "" {
		return false
	}
	for _, c := range f.Classes {
		if c == class {
			return true
		}
	}
	return false
}

var fragmentContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// inspectFragment reads the first element of a fragment. ok is false when it has none.
func inspectFragment(fragment, taskIDAttr string) (fragmentRoot, bool) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), fragmentContext)
	if err != nil {
		return fragmentRoot{}, false
	}
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		var root fragmentRoot
		for _, a := range n.Attr {
			switch a.Key {
			case "id":
				root.ID = a.Val
			case "class":
				root.Classes = strings.Fields(a.Val)
			case taskIDAttr:
				root.TaskID = a.Val
			}
		}
		return root, true
	}
	return fragmentRoot{}, false
}
