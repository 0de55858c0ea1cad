package widgets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/validation"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes widget management capabilities.
type Service interface {
	RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error)
	GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error)
	GetDefinitionByName(ctx context.Context, name string) (*Definition, error)
	ListDefinitions(ctx context.Context) ([]*Definition, error)
	DeleteDefinition(ctx context.Context, req DeleteDefinitionRequest) error

	CreateInstance(ctx context.Context, input CreateInstanceInput) (*Instance, error)
	UpdateInstance(ctx context.Context, input UpdateInstanceInput) (*Instance, error)
	GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error)
	ListByPageSlot(ctx context.Context, pageID uuid.UUID, slot string) ([]*Instance, error)
	PublishInstance(ctx context.Context, req PublishInstanceRequest) (*Instance, error)
	UnpublishInstance(ctx context.Context, req PublishInstanceRequest) (*Instance, error)
	DeleteInstance(ctx context.Context, req DeleteInstanceRequest) error
}

// RegisterDefinitionInput captures the information required to register a widget definition.
type RegisterDefinitionInput struct {
	Name        string
	Description *string
	Schema      map[string]any
	Defaults    map[string]any
}

type DeleteDefinitionRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// CreateInstanceInput defines the payload required to place a widget on a page.
type CreateInstanceInput struct {
	PageID           uuid.UUID
	WidgetType       string
	Slot             string
	Configuration    map[string]any
	Behavior         string
	InheritanceLevel *int
	Published        bool
	Position         int
	CreatedBy        uuid.UUID
	UpdatedBy        uuid.UUID
}

// UpdateInstanceInput defines mutable fields for a widget instance.
type UpdateInstanceInput struct {
	InstanceID       uuid.UUID
	Configuration    map[string]any
	Behavior         *string
	InheritanceLevel *int
	Position         *int
	Slot             *string
	UpdatedBy        uuid.UUID
}

type DeleteInstanceRequest struct {
	InstanceID uuid.UUID
	HardDelete bool
}

// PublishInstanceRequest toggles resolution visibility for an instance.
type PublishInstanceRequest struct {
	InstanceID uuid.UUID
	ActorID    uuid.UUID
}

var ErrInstanceSoftDeleteUnsupported = errors.New("widgets: soft delete not supported for instances")
var ErrDefinitionSoftDeleteUnsupported = errors.New("widgets: soft delete not supported for definitions")

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures widget service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source used by the service.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	definitions DefinitionRepository
	instances   InstanceRepository
	now         func() time.Time
	id          IDGenerator
	logger      interfaces.Logger
}

// NewService constructs a widget service instance.
func NewService(defRepo DefinitionRepository, instRepo InstanceRepository, opts ...ServiceOption) Service {
	s := &service{
		definitions: defRepo,
		instances:   instRepo,
		now:         time.Now,
		id:          uuid.New,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDefinitionNameRequired
	}
	if len(input.Schema) == 0 {
		return nil, ErrDefinitionSchemaRequired
	}

	if err := validation.ValidateSchema(input.Schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefinitionSchemaInvalid, err)
	}
	if len(input.Defaults) > 0 {
		if err := validation.ValidatePayload(input.Schema, input.Defaults); err != nil {
			return nil, fmt.Errorf("%w: defaults: %v", ErrDefinitionSchemaInvalid, err)
		}
	}

	if existing, err := s.definitions.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrDefinitionExists
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	now := s.now()
	definition := &Definition{
		// Stable across storage backends so configuration-seeded catalogues
		// keep their identifiers between restarts.
		ID:          identity.WidgetDefinitionUUID(name),
		Name:        name,
		Description: cloneString(input.Description),
		Schema:      input.Schema,
		Defaults:    input.Defaults,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.definitions.Create(ctx, definition)
	if err != nil {
		return nil, err
	}

	s.logger.Info("widgets.definition.register", "definition_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *service) GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error) {
	return s.definitions.GetByID(ctx, id)
}

func (s *service) GetDefinitionByName(ctx context.Context, name string) (*Definition, error) {
	return s.definitions.GetByName(ctx, strings.TrimSpace(name))
}

func (s *service) ListDefinitions(ctx context.Context) ([]*Definition, error) {
	return s.definitions.List(ctx)
}

func (s *service) DeleteDefinition(ctx context.Context, req DeleteDefinitionRequest) error {
	if req.ID == uuid.Nil {
		return &NotFoundError{Resource: "widget_definition"}
	}
	if !req.HardDelete {
		return ErrDefinitionSoftDeleteUnsupported
	}

	definition, err := s.definitions.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	instances, err := s.instances.ListByType(ctx, definition.Name)
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		return ErrDefinitionInUse
	}
	return s.definitions.Delete(ctx, req.ID)
}

func (s *service) CreateInstance(ctx context.Context, input CreateInstanceInput) (*Instance, error) {
	if input.PageID == uuid.Nil {
		return nil, ErrInstancePageRequired
	}
	widgetType := strings.TrimSpace(input.WidgetType)
	if widgetType == "" {
		return nil, ErrInstanceTypeRequired
	}
	slot := strings.TrimSpace(input.Slot)
	if slot == "" {
		return nil, ErrInstanceSlotRequired
	}
	if input.CreatedBy == uuid.Nil {
		return nil, ErrInstanceCreatorRequired
	}
	if input.UpdatedBy == uuid.Nil {
		return nil, ErrInstanceUpdaterRequired
	}
	if input.Position < 0 {
		return nil, ErrInstancePositionInvalid
	}

	behavior, err := ParseBehavior(input.Behavior)
	if err != nil {
		return nil, err
	}

	level := InheritanceUnlimited
	if input.InheritanceLevel != nil {
		level = *input.InheritanceLevel
	}
	if level < InheritanceUnlimited {
		return nil, fmt.Errorf("%w: %d", ErrInheritanceLevelInvalid, level)
	}

	definition, err := s.definitions.GetByName(ctx, widgetType)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %q", ErrInstanceTypeUnknown, widgetType)
		}
		return nil, err
	}

	config := mergeConfiguration(definition.Defaults, input.Configuration)
	if err := validation.ValidatePayload(definition.Schema, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstanceConfigurationInvalid, err)
	}

	now := s.now()
	instance := &Instance{
		ID:               s.id(),
		PageID:           input.PageID,
		WidgetType:       definition.Name,
		Slot:             slot,
		Configuration:    config,
		Behavior:         behavior,
		InheritanceLevel: level,
		Published:        input.Published,
		Position:         input.Position,
		CreatedBy:        input.CreatedBy,
		UpdatedBy:        input.UpdatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.instances.Create(ctx, instance)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("widgets.instance.create",
		"instance_id", created.ID,
		"page_id", created.PageID,
		"slot", created.Slot,
		"widget_type", created.WidgetType,
	)
	return created, nil
}

func (s *service) UpdateInstance(ctx context.Context, input UpdateInstanceInput) (*Instance, error) {
	if input.InstanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if input.UpdatedBy == uuid.Nil {
		return nil, ErrInstanceUpdaterRequired
	}

	instance, err := s.instances.GetByID(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	if input.Position != nil && *input.Position < 0 {
		return nil, ErrInstancePositionInvalid
	}

	if input.Behavior != nil {
		behavior, err := ParseBehavior(*input.Behavior)
		if err != nil {
			return nil, err
		}
		instance.Behavior = behavior
	}

	if input.InheritanceLevel != nil {
		if *input.InheritanceLevel < InheritanceUnlimited {
			return nil, fmt.Errorf("%w: %d", ErrInheritanceLevelInvalid, *input.InheritanceLevel)
		}
		instance.InheritanceLevel = *input.InheritanceLevel
	}

	if input.Configuration != nil {
		definition, err := s.definitions.GetByName(ctx, instance.WidgetType)
		if err != nil {
			return nil, err
		}
		config := mergeConfiguration(definition.Defaults, input.Configuration)
		if err := validation.ValidatePayload(definition.Schema, config); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInstanceConfigurationInvalid, err)
		}
		instance.Configuration = config
	}

	if input.Slot != nil {
		slot := strings.TrimSpace(*input.Slot)
		if slot == "" {
			return nil, ErrInstanceSlotRequired
		}
		instance.Slot = slot
	}
	if input.Position != nil {
		instance.Position = *input.Position
	}

	instance.UpdatedBy = input.UpdatedBy
	instance.UpdatedAt = s.now()

	return s.instances.Update(ctx, instance)
}

func (s *service) GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error) {
	if id == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	return s.instances.GetByID(ctx, id)
}

func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error) {
	if pageID == uuid.Nil {
		return nil, ErrInstancePageRequired
	}
	return s.instances.ListByPage(ctx, pageID)
}

func (s *service) ListByPageSlot(ctx context.Context, pageID uuid.UUID, slot string) ([]*Instance, error) {
	if pageID == uuid.Nil {
		return nil, ErrInstancePageRequired
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return nil, ErrInstanceSlotRequired
	}
	return s.instances.ListByPageSlot(ctx, pageID, slot)
}

func (s *service) PublishInstance(ctx context.Context, req PublishInstanceRequest) (*Instance, error) {
	return s.setPublished(ctx, req, true)
}

func (s *service) UnpublishInstance(ctx context.Context, req PublishInstanceRequest) (*Instance, error) {
	return s.setPublished(ctx, req, false)
}

func (s *service) setPublished(ctx context.Context, req PublishInstanceRequest, published bool) (*Instance, error) {
	if req.InstanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}

	instance, err := s.instances.GetByID(ctx, req.InstanceID)
	if err != nil {
		return nil, err
	}
	if instance.Published == published {
		return instance, nil
	}

	instance.Published = published
	instance.UpdatedAt = s.now()
	if req.ActorID != uuid.Nil {
		instance.UpdatedBy = req.ActorID
	}

	updated, err := s.instances.Update(ctx, instance)
	if err != nil {
		return nil, err
	}

	s.logger.Info("widgets.instance.publish",
		"instance_id", updated.ID,
		"page_id", updated.PageID,
		"published", published,
	)
	return updated, nil
}

func (s *service) DeleteInstance(ctx context.Context, req DeleteInstanceRequest) error {
	if req.InstanceID == uuid.Nil {
		return ErrInstanceIDRequired
	}
	if !req.HardDelete {
		return ErrInstanceSoftDeleteUnsupported
	}
	if _, err := s.instances.GetByID(ctx, req.InstanceID); err != nil {
		return err
	}
	return s.instances.Delete(ctx, req.InstanceID)
}
