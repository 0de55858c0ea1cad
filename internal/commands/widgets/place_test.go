package widgetscmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/widgets"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func newWidgetService(t *testing.T) widgets.Service {
	t.Helper()
	svc := widgets.NewService(
		widgets.NewMemoryDefinitionRepository(),
		widgets.NewMemoryInstanceRepository(),
	)
	_, err := svc.RegisterDefinition(context.Background(), widgets.RegisterDefinitionInput{
		Name: "hero_banner",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
			},
		},
	})
	if err != nil {
		t.Fatalf("register definition: %v", err)
	}
	return svc
}

func TestPlaceWidgetHandlerCreatesInstance(t *testing.T) {
	svc := newWidgetService(t)
	handler := NewPlaceWidgetHandler(svc, logging.NoOp())

	pageID := uuid.New()
	msg := PlaceWidgetCommand{
		PageID:        pageID,
		WidgetType:    "hero_banner",
		Slot:          "header",
		Configuration: map[string]any{"title": "Welcome"},
		Published:     true,
		ActorID:       uuid.New(),
	}

	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	placed, err := svc.ListByPageSlot(context.Background(), pageID, "header")
	if err != nil {
		t.Fatalf("list placed widgets: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("expected one placed widget, got %d", len(placed))
	}
	if !placed[0].Published {
		t.Fatalf("expected widget to be published")
	}
}

func TestPlaceWidgetHandlerValidationError(t *testing.T) {
	svc := newWidgetService(t)
	handler := NewPlaceWidgetHandler(svc, logging.NoOp())

	err := handler.Execute(context.Background(), PlaceWidgetCommand{Slot: "header"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSetWidgetPublishStateHandlerTogglesState(t *testing.T) {
	svc := newWidgetService(t)
	placeHandler := NewPlaceWidgetHandler(svc, logging.NoOp())
	publishHandler := NewSetWidgetPublishStateHandler(svc, logging.NoOp())

	pageID := uuid.New()
	actor := uuid.New()
	if err := placeHandler.Execute(context.Background(), PlaceWidgetCommand{
		PageID:     pageID,
		WidgetType: "hero_banner",
		Slot:       "header",
		ActorID:    actor,
	}); err != nil {
		t.Fatalf("place widget: %v", err)
	}

	placed, err := svc.ListByPageSlot(context.Background(), pageID, "header")
	if err != nil || len(placed) != 1 {
		t.Fatalf("list placed widgets: %v (count %d)", err, len(placed))
	}

	msg := SetWidgetPublishStateCommand{InstanceID: placed[0].ID, Published: true, ActorID: actor}
	if err := publishHandler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	refreshed, err := svc.GetInstance(context.Background(), placed[0].ID)
	if err != nil {
		t.Fatalf("get instance: %v", err)
	}
	if !refreshed.Published {
		t.Fatalf("expected instance to be published")
	}
}

func TestSetWidgetPublishStateHandlerValidationError(t *testing.T) {
	svc := newWidgetService(t)
	handler := NewSetWidgetPublishStateHandler(svc, logging.NoOp())

	err := handler.Execute(context.Background(), SetWidgetPublishStateCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
