package di

import (
	"context"
	"errors"
	"testing"
	"time"

	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/google/uuid"
)

func heroSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
		"required": []any{"title"},
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "dynamo"

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected storage provider error, got %v", err)
	}
}

func TestNewContainerRefusesDisabledModule(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Enabled = false

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrModuleDisabled) {
		t.Fatalf("expected module disabled error, got %v", err)
	}
}

func TestContainerDisabledVersioningBlocksDrafts(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Versioning = false

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	svc := container.PageService()
	actor := uuid.New()
	page, err := svc.Create(ctx, pages.CreatePageRequest{
		Slug:      "home",
		CreatedBy: actor,
		UpdatedBy: actor,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	if _, err := svc.CreateDraft(ctx, pages.CreatePageDraftRequest{PageID: page.ID, CreatedBy: actor}); !errors.Is(err, pages.ErrVersioningDisabled) {
		t.Fatalf("create draft: got %v, want ErrVersioningDisabled", err)
	}
	if _, err := svc.PublishDraft(ctx, pages.PublishPageDraftRequest{PageID: page.ID, Version: 1}); !errors.Is(err, pages.ErrVersioningDisabled) {
		t.Fatalf("publish draft: got %v, want ErrVersioningDisabled", err)
	}
}

func TestContainerCommandHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled leaves handlers unset", func(t *testing.T) {
		container, err := NewContainer(runtimeconfig.DefaultConfig())
		if err != nil {
			t.Fatalf("NewContainer returned error: %v", err)
		}
		if container.PublishPageHandler() != nil || container.MovePageHandler() != nil {
			t.Fatal("expected nil page handlers when commands are disabled")
		}
		if container.PlaceWidgetHandler() != nil || container.SetWidgetPublishStateHandler() != nil {
			t.Fatal("expected nil widget handlers when commands are disabled")
		}
	})

	t.Run("enabled wires handlers against the services", func(t *testing.T) {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Commands.Enabled = true
		cfg.Commands.Timeout = 2 * time.Second

		container, err := NewContainer(cfg)
		if err != nil {
			t.Fatalf("NewContainer returned error: %v", err)
		}
		if container.PublishPageHandler() == nil || container.MovePageHandler() == nil {
			t.Fatal("expected page handlers when commands are enabled")
		}
		if container.PlaceWidgetHandler() == nil || container.SetWidgetPublishStateHandler() == nil {
			t.Fatal("expected widget handlers when commands are enabled")
		}

		svc := container.PageService()
		actor := uuid.New()
		page, err := svc.Create(ctx, pages.CreatePageRequest{
			Slug:      "home",
			CreatedBy: actor,
			UpdatedBy: actor,
		})
		if err != nil {
			t.Fatalf("create page: %v", err)
		}
		draft, err := svc.CreateDraft(ctx, pages.CreatePageDraftRequest{PageID: page.ID, CreatedBy: actor})
		if err != nil {
			t.Fatalf("create draft: %v", err)
		}

		cmd := pagescmd.PublishPageCommand{
			PageID:      page.ID,
			Version:     draft.Version,
			PublishedBy: &actor,
		}
		if err := container.PublishPageHandler().Execute(ctx, cmd); err != nil {
			t.Fatalf("publish command: %v", err)
		}

		fresh, err := svc.Get(ctx, page.ID)
		if err != nil {
			t.Fatalf("get after publish: %v", err)
		}
		effective, err := svc.GetEffectiveVersion(ctx, fresh)
		if err != nil {
			t.Fatalf("effective version: %v", err)
		}
		if effective == nil || effective.Version != draft.Version {
			t.Fatalf("effective version = %d, want %d", effective.Version, draft.Version)
		}
	})
}

func TestContainerEnabledCacheBuildsService(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 50 * time.Millisecond

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.cacheService == nil {
		t.Fatal("expected cache service when cache is enabled")
	}
	if container.keySerializer == nil {
		t.Fatal("expected key serializer when cache is enabled")
	}
}

func TestNewContainerDefaultsToMemoryRepositories(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if _, ok := container.PageRepository().(*pages.MemoryPageRepository); !ok {
		t.Fatalf("expected memory page repository, got %T", container.PageRepository())
	}
	if container.PageService() == nil {
		t.Fatal("expected page service")
	}
	if container.WidgetService() == nil {
		t.Fatal("expected widget service")
	}
	if container.TreeBuilder() == nil {
		t.Fatal("expected tree builder")
	}
	if container.DB() != nil {
		t.Fatal("expected nil bun handle for memory storage")
	}
}

func TestNewContainerSeedsWidgetDefinitions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Widgets.Definitions = []runtimeconfig.WidgetDefinitionConfig{
		{
			Name:        "hero_banner",
			Description: "Top of page hero",
			Schema:      heroSchema(),
			Defaults:    map[string]any{"title": "Welcome"},
		},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	definition, err := container.WidgetService().GetDefinitionByName(context.Background(), "hero_banner")
	if err != nil {
		t.Fatalf("GetDefinitionByName returned error: %v", err)
	}
	if definition.Description == nil || *definition.Description != "Top of page hero" {
		t.Fatalf("expected seeded description, got %v", definition.Description)
	}
}

func TestNewContainerSeedingRejectsBrokenSchema(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Widgets.Definitions = []runtimeconfig.WidgetDefinitionConfig{
		{
			Name:   "broken",
			Schema: map[string]any{"type": "definitely-not-a-type"},
		},
	}

	if _, err := NewContainer(cfg); !errors.Is(err, widgets.ErrDefinitionSchemaInvalid) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestContainerResolvesInheritedWidgets(t *testing.T) {
	ctx := context.Background()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Widgets.Definitions = []runtimeconfig.WidgetDefinitionConfig{
		{Name: "hero_banner", Schema: heroSchema()},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	pageSvc := container.PageService()
	widgetSvc := container.WidgetService()
	actor := uuid.New()

	home, err := pageSvc.Create(ctx, pages.CreatePageRequest{
		Slug:      "home",
		CreatedBy: actor,
		UpdatedBy: actor,
	})
	if err != nil {
		t.Fatalf("create home: %v", err)
	}
	about, err := pageSvc.Create(ctx, pages.CreatePageRequest{
		Slug:      "about",
		ParentID:  &home.ID,
		CreatedBy: actor,
		UpdatedBy: actor,
	})
	if err != nil {
		t.Fatalf("create about: %v", err)
	}

	header, err := widgetSvc.CreateInstance(ctx, widgets.CreateInstanceInput{
		PageID:        home.ID,
		WidgetType:    "hero_banner",
		Slot:          "header",
		Configuration: map[string]any{"title": "Acme"},
		Published:     true,
		CreatedBy:     actor,
		UpdatedBy:     actor,
	})
	if err != nil {
		t.Fatalf("create instance: %v", err)
	}

	homeDraft, err := pageSvc.CreateDraft(ctx, pages.CreatePageDraftRequest{
		PageID: home.ID,
		Widgets: map[string][]widgets.Instance{
			"header": {*header},
		},
		CreatedBy: actor,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := pageSvc.PublishDraft(ctx, pages.PublishPageDraftRequest{
		PageID:      home.ID,
		Version:     homeDraft.Version,
		PublishedBy: actor,
	}); err != nil {
		t.Fatalf("publish draft: %v", err)
	}

	tree, err := container.TreeBuilder().BuildTree(ctx, about)
	if err != nil {
		t.Fatalf("BuildTree returned error: %v", err)
	}

	merged := tree.GetMergedWidgets("header")
	if len(merged) != 1 {
		t.Fatalf("expected 1 inherited widget, got %d", len(merged))
	}
	if merged[0].Widget.ID != header.ID {
		t.Fatalf("expected inherited header widget, got %s", merged[0].Widget.ID)
	}
	if !merged[0].IsInherited {
		t.Fatal("expected widget to be marked inherited")
	}
}
