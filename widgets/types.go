package widgets

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// InheritanceBehavior selects how a widget merges with inherited content in
// the same slot. It is a property of the placement, not of the widget type:
// new behaviors are added here and handled in the resolver switch, never by
// subclassing widget types.
type InheritanceBehavior string

const (
	// BehaviorOverride discards every contribution inherited from ancestor
	// pages for the slot and replaces it with the defining page's widgets.
	BehaviorOverride InheritanceBehavior = "override"
	// BehaviorInsertBefore prepends the widget ahead of inherited content.
	BehaviorInsertBefore InheritanceBehavior = "insert_before"
	// BehaviorInsertAfter appends the widget after inherited content. This is
	// the default for instances that do not declare a behavior.
	BehaviorInsertAfter InheritanceBehavior = "insert_after"
)

// DefaultBehavior is applied when an instance carries an empty behavior value.
const DefaultBehavior = BehaviorInsertAfter

// InheritanceUnlimited marks an instance as visible to descendants at any depth.
const InheritanceUnlimited = -1

// Valid reports whether the behavior is one of the recognized variants.
func (b InheritanceBehavior) Valid() bool {
	switch b {
	case BehaviorOverride, BehaviorInsertBefore, BehaviorInsertAfter:
		return true
	}
	return false
}

// ParseBehavior normalizes a raw behavior value. Empty input resolves to
// DefaultBehavior; anything unrecognized is a per-widget data error.
func ParseBehavior(value string) (InheritanceBehavior, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return DefaultBehavior, nil
	}
	behavior := InheritanceBehavior(trimmed)
	if !behavior.Valid() {
		return "", fmt.Errorf("%w: %q", ErrBehaviorUnknown, value)
	}
	return behavior, nil
}

// Definition captures a widget type, its configuration schema, and default values.
type Definition struct {
	bun.BaseModel `bun:"table:widget_definitions,alias:wd"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name        string         `bun:"name,notnull,unique" json:"name"`
	Description *string        `bun:"description" json:"description,omitempty"`
	Schema      map[string]any `bun:"schema,type:jsonb,notnull" json:"schema"`
	Defaults    map[string]any `bun:"defaults,type:jsonb" json:"defaults,omitempty"`
	DeletedAt   *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Instance represents a widget placed into a named slot on a page. Instances
// are the unit of inheritance: descendants of the owning page see the widget
// according to Behavior and InheritanceLevel when it is published.
type Instance struct {
	bun.BaseModel `bun:"table:widget_instances,alias:wi"`

	ID     uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageID uuid.UUID `bun:"page_id,notnull,type:uuid" json:"page_id"`

	// WidgetType names the rendering behavior. The inheritance resolver treats
	// it as opaque; the widgets service resolves it against Definition records.
	WidgetType string `bun:"widget_type,notnull" json:"widget_type"`
	Slot       string `bun:"slot,notnull" json:"slot"`

	// Configuration is an opaque payload interpreted by the rendering pipeline.
	Configuration map[string]any `bun:"configuration,type:jsonb,notnull,default:'{}'::jsonb" json:"configuration"`

	Behavior InheritanceBehavior `bun:"inheritance_behavior,notnull,default:'insert_after'" json:"inheritance_behavior"`

	// InheritanceLevel bounds how far descendants may see this widget:
	// InheritanceUnlimited (-1) for any depth, 0 for the defining page only,
	// N > 0 for descendants up to N hops away. The defining page always sees
	// its own widgets regardless of level.
	InheritanceLevel int `bun:"inheritance_level,notnull,default:-1" json:"inheritance_level"`

	// Published gates visibility entirely: unpublished widgets never resolve,
	// including on their own page.
	Published bool `bun:"published,notnull,default:false" json:"published"`

	// Position breaks ties between widgets defined at the same depth.
	Position int `bun:"position,notnull,default:0" json:"position"`

	CreatedBy uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// EffectiveBehavior resolves the instance behavior, applying the default for
// empty values. Unknown values surface as errors so the resolver can skip the
// single offending widget instead of aborting the slot.
func (i *Instance) EffectiveBehavior() (InheritanceBehavior, error) {
	return ParseBehavior(string(i.Behavior))
}

// VisibleAt reports whether the widget's inheritance window covers a
// descendant at the given depth. Depth 0 (the defining page) is always
// visible; publish state is checked separately.
func (i *Instance) VisibleAt(depth int) bool {
	if depth <= 0 {
		return true
	}
	if i.InheritanceLevel == InheritanceUnlimited {
		return true
	}
	return depth <= i.InheritanceLevel
}
