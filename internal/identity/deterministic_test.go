package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	a := UUID("go-pagekit:page:home")
	b := UUID("go-pagekit:page:home")
	if a == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("same key produced different ids: %s vs %s", a, b)
	}
	if UUID("go-pagekit:page:about") == a {
		t.Fatalf("different keys collided")
	}
	if UUID("  ") != uuid.Nil {
		t.Fatalf("blank key should resolve to uuid.Nil")
	}
}

func TestEntityKeysDoNotCollide(t *testing.T) {
	definition := WidgetDefinitionUUID("home")
	if WidgetDefinitionUUID("Home") != definition {
		t.Fatalf("definition ids should be case-insensitive on name")
	}

	pageID := uuid.New()
	v1 := PageVersionUUID(pageID, 1)
	v2 := PageVersionUUID(pageID, 2)
	if v1 == v2 {
		t.Fatalf("versions collided")
	}
	if v1 == definition {
		t.Fatalf("version and definition keys collided")
	}
}
