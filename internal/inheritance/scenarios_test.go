package inheritance

import (
	"context"
	"testing"

	"github.com/goliatone/go-pagekit/pages"
	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

// widgetID mirrors the deterministic ids testWidget assigns.
func widgetID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("widget:"+key))
}

// siteFixture is the three level hierarchy used across the end-to-end
// resolution tests: Home -> About -> History, resolved from History.
type siteFixture struct {
	provider *stubProvider
	home     *pages.Page
	about    *pages.Page
	history  *pages.Page
}

func buildSite(t *testing.T) (*stubProvider, *siteFixture) {
	t.Helper()

	home := testPage("home")
	about := testPage("about")
	history := testPage("history")

	provider := &stubProvider{
		parents:  map[uuid.UUID]*pages.Page{},
		versions: map[uuid.UUID]*pages.PageVersion{},
	}
	provider.parents[history.ID] = about
	provider.parents[about.ID] = home

	provider.versions[home.ID] = publishedVersion(home, map[string][]widgets.Instance{
		"header": {
			testWidget("home-header-1", "hero", "header", widgets.BehaviorInsertAfter, widgets.InheritanceUnlimited, 0),
		},
		"sidebar": {
			testWidget("home-nav-1", "nav", "sidebar", widgets.BehaviorInsertAfter, 1, 0),
		},
	})
	provider.versions[about.ID] = publishedVersion(about, map[string][]widgets.Instance{
		"sidebar": {
			testWidget("about-nav-1", "nav", "sidebar", widgets.BehaviorOverride, widgets.InheritanceUnlimited, 0),
		},
		"main": {
			testWidget("about-content-1", "text", "main", widgets.BehaviorInsertAfter, widgets.InheritanceUnlimited, 0),
		},
	})
	provider.versions[history.ID] = publishedVersion(history, map[string][]widgets.Instance{
		"sidebar": {
			testWidget("history-sidebar-1", "nav", "sidebar", widgets.BehaviorInsertBefore, widgets.InheritanceUnlimited, 0),
		},
		"main": {
			testWidget("history-content-1", "text", "main", widgets.BehaviorInsertAfter, widgets.InheritanceUnlimited, 0),
		},
	})

	return provider, &siteFixture{provider: provider, home: home, about: about, history: history}
}

func buildHistoryTree(t *testing.T) (*Tree, *siteFixture) {
	t.Helper()
	provider, site := buildSite(t)
	tree, err := NewBuilder(provider).BuildTree(context.Background(), site.history)
	if err != nil {
		t.Fatalf("unexpected error building tree: %v", err)
	}
	return tree, site
}

func TestScenarioHeaderInheritsAcrossLevels(t *testing.T) {
	tree, _ := buildHistoryTree(t)

	got := tree.GetAllWidgets("header")
	expectOrder(t, got, "home-header-1")
	if got[0].Depth != 2 || !got[0].IsInherited {
		t.Fatalf("home header should arrive at depth 2 as inherited content: %+v", got[0])
	}
}

func TestScenarioSidebarOverrideAndLevelWindow(t *testing.T) {
	tree, _ := buildHistoryTree(t)

	// home-nav-1 is excluded twice over: its level-1 window stops above
	// History (depth 2), and About's override discards the home contribution.
	got := tree.GetMergedWidgets("sidebar")
	expectOrder(t, got, "history-sidebar-1", "about-nav-1")
}

func TestScenarioSidebarInsertBeforeParent(t *testing.T) {
	tree, _ := buildHistoryTree(t)

	got := tree.GetMergedWidgets("sidebar")
	if len(got) != 2 {
		t.Fatalf("expected 2 sidebar widgets, got %d", len(got))
	}
	if !got[0].IsLocal || got[0].Depth != 0 {
		t.Fatalf("history's insert-before widget must lead the slot: %+v", got[0])
	}
}

func TestScenarioMainLocalPrecedence(t *testing.T) {
	tree, _ := buildHistoryTree(t)

	got := tree.GetAllWidgets("main")
	expectOrder(t, got, "history-content-1", "about-content-1")
	if got[0].Depth != 0 || got[1].Depth != 1 {
		t.Fatalf("expected depths 0 and 1, got %d and %d", got[0].Depth, got[1].Depth)
	}
}

func TestScenarioFindWidget(t *testing.T) {
	tree, _ := buildHistoryTree(t)

	view, ok := tree.FindWidget(widgetID("about-content-1"))
	if !ok {
		t.Fatalf("expected to find about-content-1")
	}
	if view.Depth != 1 {
		t.Fatalf("about-content-1 should resolve at depth 1, got %d", view.Depth)
	}

	if _, ok := tree.FindWidget(widgetID("missing")); ok {
		t.Fatalf("missing widget id must not resolve")
	}
}

func TestScenarioNavigation(t *testing.T) {
	tree, site := buildHistoryTree(t)

	if root := tree.GetRoot(); root.PageID() != site.home.ID {
		t.Fatalf("GetRoot should return the Home node")
	}

	ancestors := tree.GetAncestors()
	if len(ancestors) != 2 {
		t.Fatalf("expected 2 ancestors, got %d", len(ancestors))
	}
	if ancestors[0].PageID() != site.about.ID || ancestors[1].PageID() != site.home.ID {
		t.Fatalf("ancestors must be ordered About, Home")
	}

	found := tree.TraverseUp(func(node *TreeNode) bool {
		return node.Page.Slug == "about"
	})
	if found == nil || found.Depth != 1 {
		t.Fatalf("TraverseUp should stop at About (depth 1)")
	}
	if tree.TraverseUp(func(*TreeNode) bool { return false }) != nil {
		t.Fatalf("TraverseUp with an unsatisfied predicate must return nil")
	}
}
