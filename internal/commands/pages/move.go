package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/google/uuid"
)

const movePageMessageType = "pagekit.pages.move"

// MovePageCommand reparents a page within the hierarchy. A nil NewParentID
// promotes the page to a root.
type MovePageCommand struct {
	PageID      uuid.UUID  `json:"page_id"`
	NewParentID *uuid.UUID `json:"new_parent_id,omitempty"`
	ActorID     uuid.UUID  `json:"actor_id"`
}

// Type implements command.Message.
func (MovePageCommand) Type() string { return movePageMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m MovePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("pagekit.pages.move.page_id_required", "page_id is required")
	}
	if m.NewParentID != nil && *m.NewParentID == m.PageID {
		errs["new_parent_id"] = validation.NewError("pagekit.pages.move.parent_self", "a page cannot be its own parent")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MovePageHandler reparents pages via the page service.
type MovePageHandler struct {
	inner *commands.Handler[MovePageCommand]
}

// NewMovePageHandler constructs a handler wired to the provided page service.
func NewMovePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[MovePageCommand]) *MovePageHandler {
	exec := func(ctx context.Context, msg MovePageCommand) error {
		_, err := service.Move(ctx, pages.MovePageRequest{
			PageID:      msg.PageID,
			NewParentID: msg.NewParentID,
			ActorID:     msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[MovePageCommand]{
		commands.WithLogger[MovePageCommand](logger),
		commands.WithOperation[MovePageCommand]("pages.move"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MovePageHandler{
		inner: commands.NewHandler[MovePageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MovePageCommand].Execute.
func (h *MovePageHandler) Execute(ctx context.Context, msg MovePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
