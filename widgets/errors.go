package widgets

import (
	"errors"
	"fmt"
)

var (
	ErrBehaviorUnknown         = errors.New("widgets: unknown inheritance behavior")
	ErrInheritanceLevelInvalid = errors.New("widgets: inheritance level must be -1 or greater")

	ErrDefinitionNameRequired   = errors.New("widgets: definition name required")
	ErrDefinitionSchemaRequired = errors.New("widgets: definition schema required")
	ErrDefinitionSchemaInvalid  = errors.New("widgets: definition schema invalid")
	ErrDefinitionExists         = errors.New("widgets: definition already exists")
	ErrDefinitionInUse          = errors.New("widgets: definition has active instances")

	ErrInstanceIDRequired           = errors.New("widgets: instance id required")
	ErrInstancePageRequired         = errors.New("widgets: page id required")
	ErrInstanceSlotRequired         = errors.New("widgets: slot is required")
	ErrInstanceTypeRequired         = errors.New("widgets: widget type is required")
	ErrInstanceTypeUnknown          = errors.New("widgets: widget type is not registered")
	ErrInstanceCreatorRequired      = errors.New("widgets: created_by is required")
	ErrInstanceUpdaterRequired      = errors.New("widgets: updated_by is required")
	ErrInstancePositionInvalid      = errors.New("widgets: position cannot be negative")
	ErrInstanceConfigurationInvalid = errors.New("widgets: configuration does not match definition schema")
)

// NotFoundError is returned when a widget resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
