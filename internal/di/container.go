package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagekit/internal/commands"
	pagescmd "github.com/goliatone/go-pagekit/internal/commands/pages"
	widgetscmd "github.com/goliatone/go-pagekit/internal/commands/widgets"
	"github.com/goliatone/go-pagekit/internal/inheritance"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/logging/gologger"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Memory repositories back every binding
// until a bun.DB is supplied, so the module works without external services.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	pageRepo    pages.PageRepository
	versionRepo pages.PageVersionRepository

	widgetDefinitionRepo widgets.DefinitionRepository
	widgetInstanceRepo   widgets.InstanceRepository

	pageSvc   pages.Service
	widgetSvc widgets.Service

	builder *inheritance.Builder

	publishPageHandler        *pagescmd.PublishPageHandler
	movePageHandler           *pagescmd.MovePageHandler
	placeWidgetHandler        *widgetscmd.PlaceWidgetHandler
	widgetPublishStateHandler *widgetscmd.SetWidgetPublishStateHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches repositories from memory to bun-backed implementations.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithWidgetService overrides the default widget service binding.
func WithWidgetService(svc widgets.Service) Option {
	return func(c *Container) {
		c.widgetSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if !cfg.Enabled {
		return nil, runtimeconfig.ErrModuleDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:               cfg,
		cacheTTL:             cacheTTL,
		pageRepo:             pages.NewMemoryPageRepository(),
		versionRepo:          pages.NewMemoryPageVersionRepository(),
		widgetDefinitionRepo: widgets.NewMemoryDefinitionRepository(),
		widgetInstanceRepo:   widgets.NewMemoryInstanceRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	if err := c.configureCacheDefaults(); err != nil {
		return nil, err
	}
	c.configureRepositories()

	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(
			c.pageRepo,
			c.versionRepo,
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
			pages.WithVersioning(cfg.Features.Versioning),
		)
	}

	if c.widgetSvc == nil {
		c.widgetSvc = widgets.NewService(
			c.widgetDefinitionRepo,
			c.widgetInstanceRepo,
			widgets.WithLogger(logging.WidgetsLogger(c.loggerProvider)),
		)
	}

	if err := c.seedWidgetDefinitions(context.Background()); err != nil {
		return nil, err
	}

	if cfg.Features.Inheritance {
		builderOpts := []inheritance.BuilderOption{
			inheritance.WithLogger(logging.InheritanceLogger(c.loggerProvider)),
		}
		if cfg.Inheritance.MaxDepth > 0 {
			builderOpts = append(builderOpts, inheritance.WithMaxDepth(cfg.Inheritance.MaxDepth))
		}
		c.builder = inheritance.NewBuilder(c.pageSvc, builderOpts...)
	}

	c.configureCommands()

	return c, nil
}

// configureCommands builds the command handlers when the command layer is on,
// applying the configured execution timeout to every handler.
func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled {
		return
	}

	timeout := c.Config.Commands.Timeout
	pageLogger := commands.CommandLogger(c.loggerProvider, "pages")
	widgetLogger := commands.CommandLogger(c.loggerProvider, "widgets")

	var publishOpts []commands.HandlerOption[pagescmd.PublishPageCommand]
	var moveOpts []commands.HandlerOption[pagescmd.MovePageCommand]
	var placeOpts []commands.HandlerOption[widgetscmd.PlaceWidgetCommand]
	var stateOpts []commands.HandlerOption[widgetscmd.SetWidgetPublishStateCommand]
	if timeout > 0 {
		publishOpts = append(publishOpts, commands.WithTimeout[pagescmd.PublishPageCommand](timeout))
		moveOpts = append(moveOpts, commands.WithTimeout[pagescmd.MovePageCommand](timeout))
		placeOpts = append(placeOpts, commands.WithTimeout[widgetscmd.PlaceWidgetCommand](timeout))
		stateOpts = append(stateOpts, commands.WithTimeout[widgetscmd.SetWidgetPublishStateCommand](timeout))
	}

	c.publishPageHandler = pagescmd.NewPublishPageHandler(c.pageSvc, pageLogger, publishOpts...)
	c.movePageHandler = pagescmd.NewMovePageHandler(c.pageSvc, pageLogger, moveOpts...)
	c.placeWidgetHandler = widgetscmd.NewPlaceWidgetHandler(c.widgetSvc, widgetLogger, placeOpts...)
	c.widgetPublishStateHandler = widgetscmd.NewSetWidgetPublishStateHandler(c.widgetSvc, widgetLogger, stateOpts...)
}

func (c *Container) configureLogging() error {
	if !c.Config.Features.Logger || c.loggerProvider != nil {
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}

	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("pagekit: cache enabled but cache service failed to build: %w", err)
		}
		c.cacheService = service
	}

	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}

	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.versionRepo = pages.NewBunPageVersionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.widgetDefinitionRepo = widgets.NewBunDefinitionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.widgetInstanceRepo = widgets.NewBunInstanceRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// seedWidgetDefinitions registers configured definitions so hosts can declare
// their widget catalogue up front. Already-registered names are left alone.
func (c *Container) seedWidgetDefinitions(ctx context.Context) error {
	if !c.Config.Features.Widgets {
		return nil
	}

	for _, def := range c.Config.Widgets.Definitions {
		input := widgets.RegisterDefinitionInput{
			Name:     def.Name,
			Schema:   def.Schema,
			Defaults: def.Defaults,
		}
		if desc := strings.TrimSpace(def.Description); desc != "" {
			input.Description = &desc
		}

		if _, err := c.widgetSvc.RegisterDefinition(ctx, input); err != nil {
			if errors.Is(err, widgets.ErrDefinitionExists) {
				continue
			}
			return err
		}
	}

	return nil
}

// PageService exposes the page service binding.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// WidgetService exposes the widget service binding.
func (c *Container) WidgetService() widgets.Service {
	return c.widgetSvc
}

// TreeBuilder exposes the inheritance tree builder.
func (c *Container) TreeBuilder() *inheritance.Builder {
	return c.builder
}

// PageRepository exposes the active page repository binding.
func (c *Container) PageRepository() pages.PageRepository {
	return c.pageRepo
}

// PageVersionRepository exposes the active page version repository binding.
func (c *Container) PageVersionRepository() pages.PageVersionRepository {
	return c.versionRepo
}

// WidgetDefinitionRepository exposes the active definition repository binding.
func (c *Container) WidgetDefinitionRepository() widgets.DefinitionRepository {
	return c.widgetDefinitionRepo
}

// WidgetInstanceRepository exposes the active instance repository binding.
func (c *Container) WidgetInstanceRepository() widgets.InstanceRepository {
	return c.widgetInstanceRepo
}

// PublishPageHandler exposes the publish-page command handler, nil when the
// command layer is disabled.
func (c *Container) PublishPageHandler() *pagescmd.PublishPageHandler {
	return c.publishPageHandler
}

// MovePageHandler exposes the move-page command handler, nil when the command
// layer is disabled.
func (c *Container) MovePageHandler() *pagescmd.MovePageHandler {
	return c.movePageHandler
}

// PlaceWidgetHandler exposes the place-widget command handler, nil when the
// command layer is disabled.
func (c *Container) PlaceWidgetHandler() *widgetscmd.PlaceWidgetHandler {
	return c.placeWidgetHandler
}

// SetWidgetPublishStateHandler exposes the widget publish-state command
// handler, nil when the command layer is disabled.
func (c *Container) SetWidgetPublishStateHandler() *widgetscmd.SetWidgetPublishStateHandler {
	return c.widgetPublishStateHandler
}

// LoggerProvider exposes the configured logger provider, if any.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the bun handle when bun-backed storage is active.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}
