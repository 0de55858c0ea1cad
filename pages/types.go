package pages

import (
	"time"

	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a node in the single-rooted site tree. The pages service owns
// creation, deletion, and parent moves, and guarantees the hierarchy stays
// acyclic; downstream consumers such as the inheritance resolver rely on that
// invariant.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID       uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ParentID *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Slug     string     `bun:"slug,notnull,unique" json:"slug"`
	Status   string     `bun:"status,notnull,default:'draft'" json:"status"`

	// CurrentVersion tracks the latest draft number; PublishedVersion points at
	// the version visible to rendering, nil when the page was never published.
	CurrentVersion   int  `bun:"current_version,notnull,default:0" json:"current_version"`
	PublishedVersion *int `bun:"published_version" json:"published_version,omitempty"`

	CreatedBy uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Versions []*PageVersion `bun:"rel:has-many,join:id=page_id" json:"versions,omitempty"`
}

// PageVersion snapshots the widget placements of a page at draft time.
// Versions are immutable once created; edits produce new versions, so a
// resolution snapshot is never mutated concurrently.
type PageVersion struct {
	bun.BaseModel `bun:"table:page_versions,alias:pv"`

	ID      uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageID  uuid.UUID `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Version int       `bun:"version,notnull" json:"version"`

	// Widgets maps slot names to the ordered widget instances captured when
	// the draft was created.
	Widgets map[string][]widgets.Instance `bun:"widgets,type:jsonb,notnull,default:'{}'::jsonb" json:"widgets"`

	PublishedAt *time.Time `bun:"published_at" json:"published_at,omitempty"`
	PublishedBy *uuid.UUID `bun:"published_by,type:uuid" json:"published_by,omitempty"`
	CreatedBy   uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// SlotWidgets returns the ordered widget list for a slot, nil when the slot
// has no contributions.
func (v *PageVersion) SlotWidgets(slot string) []widgets.Instance {
	if v == nil || len(v.Widgets) == 0 {
		return nil
	}
	return v.Widgets[slot]
}
