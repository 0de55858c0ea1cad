// Package inheritance exposes the widget inheritance resolution engine: it
// builds an ancestry tree for a page and merges slot placements according to
// each widget's inheritance behavior.
package inheritance

import (
	engine "github.com/goliatone/go-pagekit/internal/inheritance"
)

type (
	// PageProvider supplies ancestry and published snapshots during tree construction.
	PageProvider = engine.PageProvider
	// Builder climbs a page's ancestry and produces resolution trees.
	Builder = engine.Builder
	// BuilderOption configures tree construction.
	BuilderOption = engine.BuilderOption
	// Tree is the ephemeral structure produced per resolution call.
	Tree = engine.Tree
	// TreeNode holds one ancestor in the resolution chain.
	TreeNode = engine.TreeNode
	// WidgetView is a resolved widget annotated with its provenance.
	WidgetView = engine.WidgetView
	// TreeStatistics summarizes a built tree.
	TreeStatistics = engine.TreeStatistics
	// CycleError reports the page at which the ancestry folded back on itself.
	CycleError = engine.CycleError
)

var (
	NewBuilder   = engine.NewBuilder
	WithLogger   = engine.WithLogger
	WithMaxDepth = engine.WithMaxDepth

	ErrPageRequired     = engine.ErrPageRequired
	ErrProviderRequired = engine.ErrProviderRequired
	ErrAncestryCycle    = engine.ErrAncestryCycle
	ErrMaxDepthExceeded = engine.ErrMaxDepthExceeded
)
