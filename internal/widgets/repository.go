package widgets

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewDefinitionRecordRepository creates the bun-backed repository for widget definitions.
func NewDefinitionRecordRepository(db *bun.DB) repository.Repository[*Definition] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Definition]{
		NewRecord:          func() *Definition { return &Definition{} },
		GetID:              func(definition *Definition) uuid.UUID { return definition.ID },
		SetID:              func(definition *Definition, id uuid.UUID) { definition.ID = id },
		GetIdentifier:      func() string { return "name" },
		GetIdentifierValue: func(definition *Definition) string { return definition.Name },
	})
}

// NewInstanceRecordRepository creates the bun-backed repository for widget instances.
func NewInstanceRecordRepository(db *bun.DB) repository.Repository[*Instance] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Instance]{
		NewRecord:          func() *Instance { return &Instance{} },
		GetID:              func(instance *Instance) uuid.UUID { return instance.ID },
		SetID:              func(instance *Instance, id uuid.UUID) { instance.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(instance *Instance) string { return instance.ID.String() },
	})
}
