package pagekit_test

import (
	"context"
	"testing"

	pagekit "github.com/goliatone/go-pagekit"
	internalpages "github.com/goliatone/go-pagekit/internal/pages"
	internalwidgets "github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/goliatone/go-pagekit/pages"
	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

func moduleConfig() pagekit.Config {
	cfg := pagekit.DefaultConfig()
	cfg.Widgets.Definitions = []pagekit.WidgetDefinitionConfig{
		{
			Name:   "site_nav",
			Schema: map[string]any{"type": "object"},
		},
		{
			Name:   "breadcrumb",
			Schema: map[string]any{"type": "object"},
		},
		{
			Name: "hero_banner",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
				},
				"required": []any{"title"},
			},
			Defaults: map[string]any{"title": "Welcome"},
		},
	}
	return cfg
}

type siteFixture struct {
	module  *pagekit.Module
	actor   uuid.UUID
	home    *pages.Page
	about   *pages.Page
	history *pages.Page
}

// buildSite assembles a three-level hierarchy with published snapshots:
//
//	home    header: site_nav (insert_after), promo hero limited to 1 level,
//	        draft hero left unpublished; main: welcome hero
//	about   header: breadcrumb (insert_before); main: hero override
//	history no local widgets, no published version
func buildSite(t *testing.T, ctx context.Context) *siteFixture {
	t.Helper()

	module, err := pagekit.New(moduleConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	actor := uuid.New()
	createPage := func(slug string, parent *uuid.UUID) *pages.Page {
		page, err := module.Pages().Create(ctx, internalpages.CreatePageRequest{
			Slug:      slug,
			ParentID:  parent,
			CreatedBy: actor,
			UpdatedBy: actor,
		})
		if err != nil {
			t.Fatalf("create page %s: %v", slug, err)
		}
		return page
	}

	home := createPage("home", nil)
	about := createPage("about", &home.ID)
	history := createPage("history", &about.ID)

	place := func(pageID uuid.UUID, widgetType, slot, behavior string, level *int, published bool, position int, config map[string]any) *widgets.Instance {
		instance, err := module.Widgets().CreateInstance(ctx, internalwidgets.CreateInstanceInput{
			PageID:           pageID,
			WidgetType:       widgetType,
			Slot:             slot,
			Configuration:    config,
			Behavior:         behavior,
			InheritanceLevel: level,
			Published:        published,
			Position:         position,
			CreatedBy:        actor,
			UpdatedBy:        actor,
		})
		if err != nil {
			t.Fatalf("place %s on %s: %v", widgetType, pageID, err)
		}
		return instance
	}

	oneLevel := 1
	nav := place(home.ID, "site_nav", "header", "", nil, true, 0, nil)
	promo := place(home.ID, "hero_banner", "header", "", &oneLevel, true, 1, map[string]any{"title": "Promo"})
	draft := place(home.ID, "hero_banner", "header", "", nil, false, 2, map[string]any{"title": "Unreleased"})
	welcome := place(home.ID, "hero_banner", "main", "", nil, true, 0, nil)

	crumb := place(about.ID, "breadcrumb", "header", string(widgets.BehaviorInsertBefore), nil, true, 0, nil)
	aboutHero := place(about.ID, "hero_banner", "main", string(widgets.BehaviorOverride), nil, true, 0, map[string]any{"title": "About"})

	publish := func(page *pages.Page, snapshot map[string][]widgets.Instance) {
		version, err := module.Pages().CreateDraft(ctx, internalpages.CreatePageDraftRequest{
			PageID:    page.ID,
			Widgets:   snapshot,
			CreatedBy: actor,
		})
		if err != nil {
			t.Fatalf("create draft for %s: %v", page.Slug, err)
		}
		if _, err := module.Pages().PublishDraft(ctx, internalpages.PublishPageDraftRequest{
			PageID:      page.ID,
			Version:     version.Version,
			PublishedBy: actor,
		}); err != nil {
			t.Fatalf("publish draft for %s: %v", page.Slug, err)
		}
	}

	publish(home, map[string][]widgets.Instance{
		"header": {*nav, *promo, *draft},
		"main":   {*welcome},
	})
	publish(about, map[string][]widgets.Instance{
		"header": {*crumb},
		"main":   {*aboutHero},
	})

	return &siteFixture{module: module, actor: actor, home: home, about: about, history: history}
}

func mergedTypes(t *testing.T, tree *pagekit.Tree, slot string) []string {
	t.Helper()
	views := tree.GetMergedWidgets(slot)
	types := make([]string, len(views))
	for i, view := range views {
		types[i] = view.Widget.WidgetType
	}
	return types
}

func TestModuleResolvesDirectChild(t *testing.T) {
	ctx := context.Background()
	site := buildSite(t, ctx)

	tree, err := site.module.ResolvePage(ctx, "about")
	if err != nil {
		t.Fatalf("ResolvePage returned error: %v", err)
	}

	header := mergedTypes(t, tree, "header")
	want := []string{"breadcrumb", "site_nav", "hero_banner"}
	if len(header) != len(want) {
		t.Fatalf("expected %v, got %v", want, header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, header)
		}
	}

	main := tree.GetMergedWidgets("main")
	if len(main) != 1 {
		t.Fatalf("expected override to collapse main slot, got %d widgets", len(main))
	}
	if main[0].Widget.PageID != site.about.ID {
		t.Fatal("expected main slot to come from the override page")
	}
}

func TestModuleResolvesGrandchild(t *testing.T) {
	ctx := context.Background()
	site := buildSite(t, ctx)

	tree, err := site.module.ResolvePage(ctx, "history")
	if err != nil {
		t.Fatalf("ResolvePage returned error: %v", err)
	}

	// The promo hero is limited to one level and the draft hero is
	// unpublished; neither reaches the grandchild.
	header := mergedTypes(t, tree, "header")
	want := []string{"breadcrumb", "site_nav"}
	if len(header) != len(want) {
		t.Fatalf("expected %v, got %v", want, header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, header)
		}
	}

	main := tree.GetMergedWidgets("main")
	if len(main) != 1 || main[0].Widget.PageID != site.about.ID {
		t.Fatalf("expected inherited override in main slot, got %v", main)
	}
	if tree.HasLocalContent("header") {
		t.Fatal("expected grandchild to have no local header content")
	}
}

func TestModuleResolvePageUnknownSlug(t *testing.T) {
	ctx := context.Background()
	site := buildSite(t, ctx)

	if _, err := site.module.ResolvePage(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}
