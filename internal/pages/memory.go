package pages

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryPageRepository constructs an in-memory page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		byID:   make(map[uuid.UUID]*Page),
		bySlug: make(map[string]uuid.UUID),
	}
}

type MemoryPageRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Page
	bySlug map[string]uuid.UUID
}

func (m *MemoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	return clonePage(cloned), nil
}

func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *MemoryPageRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePage(m.byID[id]), nil
}

func (m *MemoryPageRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Page, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, clonePage(record))
	}
	return records, nil
}

func (m *MemoryPageRepository) ListByParent(_ context.Context, parentID *uuid.UUID) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*Page
	for _, record := range m.byID {
		switch {
		case parentID == nil && record.ParentID == nil:
			records = append(records, clonePage(record))
		case parentID != nil && record.ParentID != nil && *record.ParentID == *parentID:
			records = append(records, clonePage(record))
		}
	}
	return records, nil
}

func (m *MemoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[page.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: page.ID.String()}
	}
	if existing.Slug != page.Slug {
		delete(m.bySlug, existing.Slug)
		if page.Slug != "" {
			m.bySlug[page.Slug] = page.ID
		}
	}
	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.bySlug, record.Slug)
	delete(m.byID, id)
	return nil
}

// NewMemoryPageVersionRepository constructs an in-memory page version repository.
func NewMemoryPageVersionRepository() *MemoryPageVersionRepository {
	return &MemoryPageVersionRepository{
		byPage: make(map[uuid.UUID][]*PageVersion),
	}
}

type MemoryPageVersionRepository struct {
	mu     sync.RWMutex
	byPage map[uuid.UUID][]*PageVersion
}

func (m *MemoryPageVersionRepository) Create(_ context.Context, version *PageVersion) (*PageVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePageVersion(version)
	m.byPage[cloned.PageID] = append(m.byPage[cloned.PageID], cloned)
	return clonePageVersion(cloned), nil
}

func (m *MemoryPageVersionRepository) GetByPageAndVersion(_ context.Context, pageID uuid.UUID, version int) (*PageVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byPage[pageID] {
		if record.Version == version {
			return clonePageVersion(record), nil
		}
	}
	return nil, &VersionNotFoundError{PageID: pageID, Version: version}
}

func (m *MemoryPageVersionRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*PageVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.byPage[pageID]
	out := make([]*PageVersion, len(records))
	for i, record := range records {
		out[i] = clonePageVersion(record)
	}
	return out, nil
}

func (m *MemoryPageVersionRepository) Update(_ context.Context, version *PageVersion) (*PageVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.byPage[version.PageID]
	for i, record := range records {
		if record.ID == version.ID {
			cloned := clonePageVersion(version)
			records[i] = cloned
			return clonePageVersion(cloned), nil
		}
	}
	return nil, &VersionNotFoundError{PageID: version.PageID, Version: version.Version}
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.ParentID = cloneUUIDPointer(src.ParentID)
	cloned.PublishedVersion = cloneIntPointer(src.PublishedVersion)
	cloned.DeletedAt = cloneTimePointer(src.DeletedAt)
	cloned.Versions = nil
	return &cloned
}

func clonePageVersion(src *PageVersion) *PageVersion {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Widgets = cloneSlotWidgets(src.Widgets)
	cloned.PublishedAt = cloneTimePointer(src.PublishedAt)
	cloned.PublishedBy = cloneUUIDPointer(src.PublishedBy)
	return &cloned
}
