// Package pagekit assembles hierarchical page management with widget
// inheritance resolution. Hosts construct a Module from a Config, optionally
// binding a bun database and logger provider through DI options, and consume
// the page, widget, and inheritance services it exposes.
package pagekit

import (
	"context"

	"github.com/goliatone/go-pagekit/inheritance"
	"github.com/goliatone/go-pagekit/internal/di"
	internalpages "github.com/goliatone/go-pagekit/internal/pages"
	internalwidgets "github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/goliatone/go-pagekit/pages"
)

// PageService exports the pages service contract.
type PageService = internalpages.Service

// WidgetService exports the widgets service contract.
type WidgetService = internalwidgets.Service

// Tree exports the inheritance resolution tree.
type Tree = inheritance.Tree

// Module represents the top level pagekit runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a pagekit module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Widgets returns the configured widget service.
func (m *Module) Widgets() WidgetService {
	return m.container.WidgetService()
}

// Inheritance returns the widget inheritance tree builder. It is nil when the
// inheritance feature is disabled.
func (m *Module) Inheritance() *inheritance.Builder {
	return m.container.TreeBuilder()
}

// ResolvePage builds the inheritance tree for the page identified by slug.
// It is a convenience wrapper over Pages().GetBySlug and Inheritance().BuildTree.
func (m *Module) ResolvePage(ctx context.Context, slug string) (*inheritance.Tree, error) {
	page, err := m.Pages().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return m.resolve(ctx, page)
}

func (m *Module) resolve(ctx context.Context, page *pages.Page) (*inheritance.Tree, error) {
	builder := m.container.TreeBuilder()
	if builder == nil {
		return nil, inheritance.ErrProviderRequired
	}
	return builder.BuildTree(ctx, page)
}
