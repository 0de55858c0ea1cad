package inheritance

import (
	"context"
	"time"

	"github.com/goliatone/go-pagekit/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

// PageProvider is the narrow collaborator contract the tree builder climbs
// with. The pages service satisfies it; GetParent returns nil for the root and
// GetEffectiveVersion returns nil when a page was never published. Neither
// absence is an error.
type PageProvider interface {
	GetParent(ctx context.Context, page *pages.Page) (*pages.Page, error)
	GetEffectiveVersion(ctx context.Context, page *pages.Page) (*pages.PageVersion, error)
}

// TreeNode holds one ancestor in the chain built for a resolution call. Depth
// is 0 at the page being resolved and increases by exactly 1 per hop toward
// the root. Slots carries the ancestor's effective widget placements, empty
// when the ancestor has no published version.
type TreeNode struct {
	Page   *pages.Page
	Depth  int
	Slots  map[string][]widgets.Instance
	Parent *TreeNode
}

// PageID returns the node's page identifier, uuid.Nil for a nil node.
func (n *TreeNode) PageID() uuid.UUID {
	if n == nil || n.Page == nil {
		return uuid.Nil
	}
	return n.Page.ID
}

// Tree is the ephemeral ancestor chain for a single resolution call. It is
// built fresh per call from immutable version snapshots, never cached or
// shared, and discarded when the call returns; resolvers on it are read-only,
// so any number of trees may be resolved concurrently.
type Tree struct {
	node          *TreeNode
	nodes         []*TreeNode
	buildDuration time.Duration
	logger        interfaces.Logger
}

// Node returns the depth-0 node for the resolved page.
func (t *Tree) Node() *TreeNode {
	if t == nil {
		return nil
	}
	return t.node
}

// GetRoot returns the node at maximum depth.
func (t *Tree) GetRoot() *TreeNode {
	if t == nil || len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[len(t.nodes)-1]
}

// GetAncestors returns the nodes above the resolved page in depth order,
// closest ancestor first.
func (t *Tree) GetAncestors() []*TreeNode {
	if t == nil || len(t.nodes) < 2 {
		return nil
	}
	ancestors := make([]*TreeNode, len(t.nodes)-1)
	copy(ancestors, t.nodes[1:])
	return ancestors
}

// TraverseUp walks from the resolved page toward the root and returns the
// first node satisfying the predicate, nil when none matches.
func (t *Tree) TraverseUp(predicate func(*TreeNode) bool) *TreeNode {
	if t == nil || predicate == nil {
		return nil
	}
	for node := t.node; node != nil; node = node.Parent {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// WidgetView tags a resolved widget with the depth it was contributed from so
// callers can distinguish local from inherited content.
type WidgetView struct {
	Widget      widgets.Instance `json:"widget"`
	PageID      uuid.UUID        `json:"page_id"`
	Depth       int              `json:"depth"`
	IsLocal     bool             `json:"is_local"`
	IsInherited bool             `json:"is_inherited"`
}

// TreeStatistics summarizes a built tree for diagnostics and performance
// assertions.
type TreeStatistics struct {
	NodeCount     int           `json:"node_count"`
	MaxDepth      int           `json:"max_depth"`
	TotalWidgets  int           `json:"total_widgets"`
	BuildDuration time.Duration `json:"build_duration"`
}

// Statistics reports node count, maximum depth, total widget instances across
// every slot snapshot, and how long the build took.
func (t *Tree) Statistics() TreeStatistics {
	if t == nil {
		return TreeStatistics{}
	}
	stats := TreeStatistics{
		NodeCount:     len(t.nodes),
		BuildDuration: t.buildDuration,
	}
	if stats.NodeCount > 0 {
		stats.MaxDepth = t.nodes[len(t.nodes)-1].Depth
	}
	for _, node := range t.nodes {
		for _, instances := range node.Slots {
			stats.TotalWidgets += len(instances)
		}
	}
	return stats
}
