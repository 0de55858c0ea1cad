package widgets

import pkwidgets "github.com/goliatone/go-pagekit/widgets"

type (
	InheritanceBehavior = pkwidgets.InheritanceBehavior
	Definition          = pkwidgets.Definition
	Instance            = pkwidgets.Instance

	NotFoundError = pkwidgets.NotFoundError
)

const (
	BehaviorOverride     = pkwidgets.BehaviorOverride
	BehaviorInsertBefore = pkwidgets.BehaviorInsertBefore
	BehaviorInsertAfter  = pkwidgets.BehaviorInsertAfter
	DefaultBehavior      = pkwidgets.DefaultBehavior
	InheritanceUnlimited = pkwidgets.InheritanceUnlimited
)

var (
	ErrBehaviorUnknown         = pkwidgets.ErrBehaviorUnknown
	ErrInheritanceLevelInvalid = pkwidgets.ErrInheritanceLevelInvalid

	ErrDefinitionNameRequired   = pkwidgets.ErrDefinitionNameRequired
	ErrDefinitionSchemaRequired = pkwidgets.ErrDefinitionSchemaRequired
	ErrDefinitionSchemaInvalid  = pkwidgets.ErrDefinitionSchemaInvalid
	ErrDefinitionExists         = pkwidgets.ErrDefinitionExists
	ErrDefinitionInUse          = pkwidgets.ErrDefinitionInUse

	ErrInstanceIDRequired           = pkwidgets.ErrInstanceIDRequired
	ErrInstancePageRequired         = pkwidgets.ErrInstancePageRequired
	ErrInstanceSlotRequired         = pkwidgets.ErrInstanceSlotRequired
	ErrInstanceTypeRequired         = pkwidgets.ErrInstanceTypeRequired
	ErrInstanceTypeUnknown          = pkwidgets.ErrInstanceTypeUnknown
	ErrInstanceCreatorRequired      = pkwidgets.ErrInstanceCreatorRequired
	ErrInstanceUpdaterRequired      = pkwidgets.ErrInstanceUpdaterRequired
	ErrInstancePositionInvalid      = pkwidgets.ErrInstancePositionInvalid
	ErrInstanceConfigurationInvalid = pkwidgets.ErrInstanceConfigurationInvalid
)

// ParseBehavior re-exports behavior parsing for internal consumers.
var ParseBehavior = pkwidgets.ParseBehavior
