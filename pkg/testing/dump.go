package testing

import (
	"slices"
	"strings"
	stdtesting "testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sprout-ui/sprout/pkg/platform"
)

// Names returns the display names of v's children in order.
func Names(v platform.View) []string {
	n := NodeOf(v)
	if n == nil {
		return nil
	}
	children := n.Children()
	out := make([]string, 0, len(children))
	for _, c := range children {
		if cn := NodeOf(c); cn != nil {
			out = append(out, cn.Name())
		}
	}
	return out
}

// Dump renders the subtree rooted at v, one node per line, with properties
// sorted by name. Callback values print as <callback>.
func Dump(v platform.View) string {
	var sb strings.Builder
	dumpNode(&sb, NodeOf(v), 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *RecordingNode, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.kind)

	n.mu.Lock()
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(n.props[name].String())
	}
	children := make([]platform.View, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	sb.WriteString("\n")
	for _, c := range children {
		dumpNode(sb, NodeOf(c), depth+1)
	}
}

// AssertGolden compares the concatenated dumps against
// testdata/golden/<name>.golden.
func AssertGolden(t *stdtesting.T, name string, dumps ...string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(strings.Join(dumps, "---\n")))
}
