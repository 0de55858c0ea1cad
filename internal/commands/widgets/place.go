package widgetscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/google/uuid"
)

const placeWidgetMessageType = "pagekit.widgets.place"

// PlaceWidgetCommand places a widget instance into a slot on a page.
type PlaceWidgetCommand struct {
	PageID           uuid.UUID      `json:"page_id"`
	WidgetType       string         `json:"widget_type"`
	Slot             string         `json:"slot"`
	Configuration    map[string]any `json:"configuration,omitempty"`
	Behavior         string         `json:"behavior,omitempty"`
	InheritanceLevel *int           `json:"inheritance_level,omitempty"`
	Published        bool           `json:"published"`
	Position         int            `json:"position"`
	ActorID          uuid.UUID      `json:"actor_id"`
}

// Type implements command.Message.
func (PlaceWidgetCommand) Type() string { return placeWidgetMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PlaceWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("pagekit.widgets.place.page_id_required", "page_id is required")
	}
	if strings.TrimSpace(m.WidgetType) == "" {
		errs["widget_type"] = validation.NewError("pagekit.widgets.place.widget_type_required", "widget_type is required")
	}
	if strings.TrimSpace(m.Slot) == "" {
		errs["slot"] = validation.NewError("pagekit.widgets.place.slot_required", "slot is required")
	}
	if m.Position < 0 {
		errs["position"] = validation.NewError("pagekit.widgets.place.position_invalid", "position cannot be negative")
	}
	if m.InheritanceLevel != nil && *m.InheritanceLevel < widgets.InheritanceUnlimited {
		errs["inheritance_level"] = validation.NewError("pagekit.widgets.place.inheritance_level_invalid", "inheritance_level must be -1 or greater")
	}
	if m.ActorID == uuid.Nil {
		errs["actor_id"] = validation.NewError("pagekit.widgets.place.actor_id_required", "actor_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PlaceWidgetHandler creates widget instances via the widget service.
type PlaceWidgetHandler struct {
	inner *commands.Handler[PlaceWidgetCommand]
}

// NewPlaceWidgetHandler constructs a handler wired to the provided widget service.
func NewPlaceWidgetHandler(service widgets.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PlaceWidgetCommand]) *PlaceWidgetHandler {
	exec := func(ctx context.Context, msg PlaceWidgetCommand) error {
		_, err := service.CreateInstance(ctx, widgets.CreateInstanceInput{
			PageID:           msg.PageID,
			WidgetType:       msg.WidgetType,
			Slot:             msg.Slot,
			Configuration:    msg.Configuration,
			Behavior:         msg.Behavior,
			InheritanceLevel: msg.InheritanceLevel,
			Published:        msg.Published,
			Position:         msg.Position,
			CreatedBy:        msg.ActorID,
			UpdatedBy:        msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PlaceWidgetCommand]{
		commands.WithLogger[PlaceWidgetCommand](logger),
		commands.WithOperation[PlaceWidgetCommand]("widgets.place"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PlaceWidgetHandler{
		inner: commands.NewHandler[PlaceWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PlaceWidgetCommand].Execute.
func (h *PlaceWidgetHandler) Execute(ctx context.Context, msg PlaceWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}
