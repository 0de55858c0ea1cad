package pages

import (
	"time"

	"github.com/goliatone/go-pagekit/widgets"
	"github.com/google/uuid"
)

func cloneSlotWidgets(src map[string][]widgets.Instance) map[string][]widgets.Instance {
	if src == nil {
		return nil
	}
	out := make(map[string][]widgets.Instance, len(src))
	for slot, instances := range src {
		copied := make([]widgets.Instance, len(instances))
		copy(copied, instances)
		out[slot] = copied
	}
	return out
}

func cloneIntPointer(src *int) *int {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func cloneTimePointer(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func cloneUUIDPointer(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
