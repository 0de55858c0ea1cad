package widgets

import (
	"maps"
	"strings"
)

func cloneDefinition(src *Definition) *Definition {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Schema != nil {
		cloned.Schema = maps.Clone(src.Schema)
	}
	if src.Defaults != nil {
		cloned.Defaults = maps.Clone(src.Defaults)
	}
	if src.Description != nil {
		value := *src.Description
		cloned.Description = &value
	}
	if src.DeletedAt != nil {
		value := *src.DeletedAt
		cloned.DeletedAt = &value
	}
	return &cloned
}

func cloneInstance(src *Instance) *Instance {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Configuration != nil {
		cloned.Configuration = maps.Clone(src.Configuration)
	}
	if src.DeletedAt != nil {
		value := *src.DeletedAt
		cloned.DeletedAt = &value
	}
	return &cloned
}

func cloneString(src *string) *string {
	if src == nil {
		return nil
	}
	cloned := strings.Clone(*src)
	return &cloned
}

func mergeConfiguration(base map[string]any, overlay map[string]any) map[string]any {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]any)
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}
