package inheritance

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

// defaultMaxDepth caps ascent well above any realistic hierarchy. The visited
// set already catches cycles; the cap bounds pathological data that grows the
// chain without repeating pages.
const defaultMaxDepth = 256

// Builder climbs a page's ancestry and produces the ephemeral tree consumed
// by the resolver. A single Builder is safe for concurrent use: every
// BuildTree call works on its own state.
type Builder struct {
	provider PageProvider
	logger   interfaces.Logger
	maxDepth int
}

// BuilderOption configures tree construction.
type BuilderOption func(*Builder)

// WithLogger injects the logger used for diagnostics and per-widget data
// error reports during resolution.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxDepth overrides the ascent cap.
func WithMaxDepth(depth int) BuilderOption {
	return func(b *Builder) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

// NewBuilder constructs a tree builder on top of the page/version provider.
func NewBuilder(provider PageProvider, opts ...BuilderOption) *Builder {
	b := &Builder{
		provider: provider,
		logger:   logging.NoOp(),
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildTree walks from page up to the root and returns the depth-0 node
// wrapped in a Tree. Ancestors without a published version contribute empty
// slots but do not stop the ascent. A revisited page aborts with a CycleError
// carrying the walked path.
func (b *Builder) BuildTree(ctx context.Context, page *pages.Page) (*Tree, error) {
	if b == nil || b.provider == nil {
		return nil, ErrProviderRequired
	}
	if page == nil {
		return nil, ErrPageRequired
	}

	start := time.Now()

	visited := make(map[uuid.UUID]struct{})
	path := make([]uuid.UUID, 0, 8)
	nodes := make([]*TreeNode, 0, 8)

	current := page
	for depth := 0; current != nil; depth++ {
		if _, seen := visited[current.ID]; seen {
			cycle := &CycleError{PageID: current.ID, Path: path}
			b.logger.Error("inheritance.build.cycle_detected",
				"page_id", current.ID,
				"depth", depth,
			)
			return nil, cycle
		}
		if depth >= b.maxDepth {
			return nil, fmt.Errorf("%w: limit=%d", ErrMaxDepthExceeded, b.maxDepth)
		}
		visited[current.ID] = struct{}{}
		path = append(path, current.ID)

		version, err := b.provider.GetEffectiveVersion(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("inheritance: effective version for page %s: %w", current.ID, err)
		}

		node := &TreeNode{
			Page:  current,
			Depth: depth,
			Slots: snapshotSlots(version),
		}
		if len(nodes) > 0 {
			nodes[len(nodes)-1].Parent = node
		}
		nodes = append(nodes, node)

		parent, err := b.provider.GetParent(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("inheritance: parent of page %s: %w", current.ID, err)
		}
		current = parent
	}

	tree := &Tree{
		node:          nodes[0],
		nodes:         nodes,
		buildDuration: time.Since(start),
		logger:        b.logger,
	}

	b.logger.Debug("inheritance.build.complete",
		"page_id", page.ID,
		"nodes", len(nodes),
		"duration", tree.buildDuration,
	)

	return tree, nil
}

// snapshotSlots copies the version's slot map so the tree owns its view of
// the placements for the duration of the call.
func snapshotSlots(version *pages.PageVersion) map[string][]widgets.Instance {
	if version == nil || len(version.Widgets) == 0 {
		return map[string][]widgets.Instance{}
	}
	slots := make(map[string][]widgets.Instance, len(version.Widgets))
	for slot := range version.Widgets {
		instances := version.SlotWidgets(slot)
		copied := make([]widgets.Instance, len(instances))
		copy(copied, instances)
		slots[slot] = copied
	}
	return slots
}
