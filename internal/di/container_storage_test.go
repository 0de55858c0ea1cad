package di

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit/internal/database"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/internal/widgets"
)

func TestNewContainerUsesBunRepositoriesWhenDBProvided(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = fmt.Sprintf("file:container_storage_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())

	db, err := database.Connect(cfg.Storage)
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if _, ok := container.PageRepository().(*pages.BunPageRepository); !ok {
		t.Fatalf("expected bun page repository, got %T", container.PageRepository())
	}
	if _, ok := container.PageVersionRepository().(*pages.BunPageVersionRepository); !ok {
		t.Fatalf("expected bun page version repository, got %T", container.PageVersionRepository())
	}
	if _, ok := container.WidgetDefinitionRepository().(*widgets.BunDefinitionRepository); !ok {
		t.Fatalf("expected bun definition repository, got %T", container.WidgetDefinitionRepository())
	}
	if container.DB() != db {
		t.Fatal("expected container to expose the supplied bun handle")
	}
}

func TestDatabaseConnectValidatesInput(t *testing.T) {
	if _, err := database.Connect(runtimeconfig.StorageConfig{Provider: "sqlite"}); !errors.Is(err, database.ErrDSNRequired) {
		t.Fatalf("expected DSN error, got %v", err)
	}
	if _, err := database.Connect(runtimeconfig.StorageConfig{Provider: "memory"}); !errors.Is(err, database.ErrProviderUnsupported) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
