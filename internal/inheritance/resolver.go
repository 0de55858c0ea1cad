package inheritance

import (
	"slices"

	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

// GetAllWidgets returns every eligible widget contributed to the slot across
// the ancestor chain, ordered by depth ascending (closest page first) and
// Position ascending within equal depth.
//
// Eligibility drops unpublished widgets everywhere, widgets outside their
// inheritance window (depth > 0 and beyond InheritanceLevel), and widgets
// with an unrecognized behavior value. The last case is a per-widget data
// error: it is logged with page, slot, and widget context, and must not abort
// the rest of the slot.
func (t *Tree) GetAllWidgets(slot string) []WidgetView {
	if t == nil {
		return nil
	}

	var views []WidgetView
	for _, node := range t.nodes {
		instances := node.Slots[slot]
		if len(instances) == 0 {
			continue
		}
		for _, instance := range instances {
			if !t.eligible(node, slot, instance) {
				continue
			}
			views = append(views, WidgetView{
				Widget:      instance,
				PageID:      node.PageID(),
				Depth:       node.Depth,
				IsLocal:     node.Depth == 0,
				IsInherited: node.Depth > 0,
			})
		}
	}

	slices.SortStableFunc(views, func(a, b WidgetView) int {
		if a.Depth != b.Depth {
			return a.Depth - b.Depth
		}
		return a.Widget.Position - b.Widget.Position
	})

	return views
}

// GetInheritedWidgets returns the slot widgets contributed by ancestors only.
func (t *Tree) GetInheritedWidgets(slot string) []WidgetView {
	all := t.GetAllWidgets(slot)
	inherited := make([]WidgetView, 0, len(all))
	for _, view := range all {
		if view.IsInherited {
			inherited = append(inherited, view)
		}
	}
	if len(inherited) == 0 {
		return nil
	}
	return inherited
}

// GetMergedWidgets applies the cascade across the ancestor chain and returns
// the effective ordered widget list for the slot.
//
// Depths are merged root-most first. A depth containing an override widget
// discards everything accumulated from above and replaces it with that
// depth's widgets, combined among themselves so insert-before placements lead
// the group. A depth without an override prepends its insert-before widgets
// and appends its insert-after widgets around the inherited accumulator, each
// group in Position order.
func (t *Tree) GetMergedWidgets(slot string) []WidgetView {
	eligible := t.GetAllWidgets(slot)
	if len(eligible) == 0 {
		return nil
	}

	maxDepth := 0
	byDepth := make(map[int][]WidgetView)
	for _, view := range eligible {
		byDepth[view.Depth] = append(byDepth[view.Depth], view)
		if view.Depth > maxDepth {
			maxDepth = view.Depth
		}
	}

	var merged []WidgetView
	for depth := maxDepth; depth >= 0; depth-- {
		level := byDepth[depth]
		if len(level) == 0 {
			continue
		}

		var before, rest []WidgetView
		override := false
		for _, view := range level {
			behavior, _ := view.Widget.EffectiveBehavior()
			switch behavior {
			case widgets.BehaviorOverride:
				override = true
				rest = append(rest, view)
			case widgets.BehaviorInsertBefore:
				before = append(before, view)
			default:
				rest = append(rest, view)
			}
		}

		if override {
			merged = append(before, rest...)
			continue
		}

		next := make([]WidgetView, 0, len(level)+len(merged))
		next = append(next, before...)
		next = append(next, merged...)
		next = append(next, rest...)
		merged = next
	}

	return merged
}

// HasLocalContent reports whether the resolved page itself contributes
// eligible widgets to the slot.
func (t *Tree) HasLocalContent(slot string) bool {
	for _, view := range t.GetAllWidgets(slot) {
		if view.IsLocal {
			return true
		}
	}
	return false
}

// HasInheritedContent reports whether any ancestor contributes eligible
// widgets to the slot.
func (t *Tree) HasInheritedContent(slot string) bool {
	for _, view := range t.GetAllWidgets(slot) {
		if view.IsInherited {
			return true
		}
	}
	return false
}

// FindWidget scans every slot in GetAllWidgets order and returns the first
// widget with the given id. Ids are only unique per defining page and slot;
// on a collision across pages the closest depth wins. That tie-break is
// deliberate and documented, not deduplication.
func (t *Tree) FindWidget(id uuid.UUID) (WidgetView, bool) {
	if t == nil || id == uuid.Nil {
		return WidgetView{}, false
	}
	for _, slot := range t.slotNames() {
		for _, view := range t.GetAllWidgets(slot) {
			if view.Widget.ID == id {
				return view, true
			}
		}
	}
	return WidgetView{}, false
}

// GetWidgetsByType filters eligible widgets by their opaque type name. With
// no slot arguments every slot is scanned; otherwise only the named slots.
func (t *Tree) GetWidgetsByType(typeName string, slots ...string) []WidgetView {
	if t == nil || typeName == "" {
		return nil
	}
	if len(slots) == 0 {
		slots = t.slotNames()
	}
	var matches []WidgetView
	for _, slot := range slots {
		for _, view := range t.GetAllWidgets(slot) {
			if view.Widget.WidgetType == typeName {
				matches = append(matches, view)
			}
		}
	}
	return matches
}

// slotNames collects every slot name present in the tree, sorted for
// deterministic scan order.
func (t *Tree) slotNames() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, node := range t.nodes {
		for slot := range node.Slots {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			names = append(names, slot)
		}
	}
	slices.Sort(names)
	return names
}

// eligible applies the publish, inheritance-window, and data-quality filters
// for a single instance contributed at the node's depth.
func (t *Tree) eligible(node *TreeNode, slot string, instance widgets.Instance) bool {
	if !instance.Published {
		return false
	}
	if instance.InheritanceLevel < widgets.InheritanceUnlimited {
		t.logSkip(node, slot, instance, "invalid inheritance level")
		return false
	}
	if !instance.VisibleAt(node.Depth) {
		return false
	}
	if _, err := instance.EffectiveBehavior(); err != nil {
		t.logSkip(node, slot, instance, err.Error())
		return false
	}
	return true
}

func (t *Tree) logSkip(node *TreeNode, slot string, instance widgets.Instance, reason string) {
	if t.logger == nil {
		return
	}
	t.logger.Warn("inheritance.resolve.widget_skipped",
		"page_id", node.PageID(),
		"slot", slot,
		"widget_id", instance.ID,
		"reason", reason,
	)
}
