package widgetscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/widgets"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/google/uuid"
)

const setWidgetPublishStateMessageType = "pagekit.widgets.set_publish_state"

// SetWidgetPublishStateCommand toggles whether a widget instance participates
// in resolution.
type SetWidgetPublishStateCommand struct {
	InstanceID uuid.UUID `json:"instance_id"`
	Published  bool      `json:"published"`
	ActorID    uuid.UUID `json:"actor_id"`
}

// Type implements command.Message.
func (SetWidgetPublishStateCommand) Type() string { return setWidgetPublishStateMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SetWidgetPublishStateCommand) Validate() error {
	errs := validation.Errors{}
	if m.InstanceID == uuid.Nil {
		errs["instance_id"] = validation.NewError("pagekit.widgets.set_publish_state.instance_id_required", "instance_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetWidgetPublishStateHandler flips publish state via the widget service.
type SetWidgetPublishStateHandler struct {
	inner *commands.Handler[SetWidgetPublishStateCommand]
}

// NewSetWidgetPublishStateHandler constructs a handler wired to the provided widget service.
func NewSetWidgetPublishStateHandler(service widgets.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetWidgetPublishStateCommand]) *SetWidgetPublishStateHandler {
	exec := func(ctx context.Context, msg SetWidgetPublishStateCommand) error {
		req := widgets.PublishInstanceRequest{
			InstanceID: msg.InstanceID,
			ActorID:    msg.ActorID,
		}
		var err error
		if msg.Published {
			_, err = service.PublishInstance(ctx, req)
		} else {
			_, err = service.UnpublishInstance(ctx, req)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SetWidgetPublishStateCommand]{
		commands.WithLogger[SetWidgetPublishStateCommand](logger),
		commands.WithOperation[SetWidgetPublishStateCommand]("widgets.set_publish_state"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetWidgetPublishStateHandler{
		inner: commands.NewHandler[SetWidgetPublishStateCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetWidgetPublishStateCommand].Execute.
func (h *SetWidgetPublishStateHandler) Execute(ctx context.Context, msg SetWidgetPublishStateCommand) error {
	return h.inner.Execute(ctx, msg)
}
