package pagekit

import "github.com/goliatone/go-pagekit/internal/runtimeconfig"

var (
	ErrModuleDisabled             = runtimeconfig.ErrModuleDisabled
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrInheritanceMaxDepthInvalid = runtimeconfig.ErrInheritanceMaxDepthInvalid
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrWidgetDefinitionInvalid    = runtimeconfig.ErrWidgetDefinitionInvalid
)

type (
	Config                 = runtimeconfig.Config
	StorageConfig          = runtimeconfig.StorageConfig
	CacheConfig            = runtimeconfig.CacheConfig
	InheritanceConfig      = runtimeconfig.InheritanceConfig
	WidgetConfig           = runtimeconfig.WidgetConfig
	WidgetDefinitionConfig = runtimeconfig.WidgetDefinitionConfig
	Features               = runtimeconfig.Features
	CommandsConfig         = runtimeconfig.CommandsConfig
	LoggingConfig          = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
