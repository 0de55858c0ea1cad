package widgets

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryDefinitionRepository constructs an in-memory widget definition repository.
func NewMemoryDefinitionRepository() DefinitionRepository {
	return &memoryDefinitionRepository{
		byID:   make(map[uuid.UUID]*Definition),
		byName: make(map[string]uuid.UUID),
	}
}

type memoryDefinitionRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Definition
	byName map[string]uuid.UUID
}

func (m *memoryDefinitionRepository) Create(_ context.Context, definition *Definition) (*Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDefinition(definition)
	m.byID[cloned.ID] = cloned
	if cloned.Name != "" {
		m.byName[cloned.Name] = cloned.ID
	}
	return cloneDefinition(cloned), nil
}

func (m *memoryDefinitionRepository) GetByID(_ context.Context, id uuid.UUID) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: id.String()}
	}
	return cloneDefinition(record), nil
}

func (m *memoryDefinitionRepository) GetByName(_ context.Context, name string) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: name}
	}
	return cloneDefinition(m.byID[id]), nil
}

func (m *memoryDefinitionRepository) List(_ context.Context) ([]*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Definition, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneDefinition(record))
	}
	slices.SortFunc(records, func(a, b *Definition) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return records, nil
}

func (m *memoryDefinitionRepository) Update(_ context.Context, definition *Definition) (*Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[definition.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: definition.ID.String()}
	}
	if current.Name != definition.Name {
		delete(m.byName, current.Name)
	}

	cloned := cloneDefinition(definition)
	m.byID[cloned.ID] = cloned
	if cloned.Name != "" {
		m.byName[cloned.Name] = cloned.ID
	}
	return cloneDefinition(cloned), nil
}

func (m *memoryDefinitionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "widget_definition", Key: id.String()}
	}
	delete(m.byName, record.Name)
	delete(m.byID, id)
	return nil
}

// NewMemoryInstanceRepository constructs an in-memory widget instance repository.
func NewMemoryInstanceRepository() InstanceRepository {
	return &memoryInstanceRepository{
		byID:   make(map[uuid.UUID]*Instance),
		byPage: make(map[uuid.UUID][]uuid.UUID),
	}
}

type memoryInstanceRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Instance
	byPage map[uuid.UUID][]uuid.UUID
}

func (m *memoryInstanceRepository) Create(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	m.byPage[cloned.PageID] = append(m.byPage[cloned.PageID], cloned.ID)
	return cloneInstance(cloned), nil
}

func (m *memoryInstanceRepository) GetByID(_ context.Context, id uuid.UUID) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	return cloneInstance(record), nil
}

func (m *memoryInstanceRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(m.byPage[pageID], nil), nil
}

func (m *memoryInstanceRepository) ListByPageSlot(_ context.Context, pageID uuid.UUID, slot string) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(m.byPage[pageID], func(record *Instance) bool {
		return record.Slot == slot
	}), nil
}

func (m *memoryInstanceRepository) ListByType(_ context.Context, widgetType string) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*Instance, 0)
	for _, record := range m.byID {
		if record.WidgetType == widgetType {
			instances = append(instances, cloneInstance(record))
		}
	}
	sortByPosition(instances)
	return instances, nil
}

func (m *memoryInstanceRepository) Update(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[instance.ID]; !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: instance.ID.String()}
	}
	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	return cloneInstance(cloned), nil
}

func (m *memoryInstanceRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	ids := m.byPage[record.PageID]
	m.byPage[record.PageID] = slices.DeleteFunc(ids, func(candidate uuid.UUID) bool {
		return candidate == id
	})
	delete(m.byID, id)
	return nil
}

// collect must be called with the read lock held.
func (m *memoryInstanceRepository) collect(ids []uuid.UUID, keep func(*Instance) bool) []*Instance {
	instances := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		record, ok := m.byID[id]
		if !ok {
			continue
		}
		if keep != nil && !keep(record) {
			continue
		}
		instances = append(instances, cloneInstance(record))
	}
	sortByPosition(instances)
	return instances
}

func sortByPosition(instances []*Instance) {
	slices.SortStableFunc(instances, func(a, b *Instance) int {
		if a.Slot != b.Slot {
			if a.Slot < b.Slot {
				return -1
			}
			return 1
		}
		return a.Position - b.Position
	})
}
