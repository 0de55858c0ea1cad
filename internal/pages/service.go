package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-pagekit/widgets"
	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service exposes page management capabilities. It also satisfies the
// inheritance engine's PageProvider contract through GetParent and
// GetEffectiveVersion.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slugValue string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	ListChildren(ctx context.Context, parentID *uuid.UUID) ([]*Page, error)
	Move(ctx context.Context, req MovePageRequest) (*Page, error)
	Delete(ctx context.Context, req DeletePageRequest) error

	CreateDraft(ctx context.Context, req CreatePageDraftRequest) (*PageVersion, error)
	PublishDraft(ctx context.Context, req PublishPageDraftRequest) (*PageVersion, error)
	ListVersions(ctx context.Context, pageID uuid.UUID) ([]*PageVersion, error)

	GetParent(ctx context.Context, page *Page) (*Page, error)
	GetEffectiveVersion(ctx context.Context, page *Page) (*PageVersion, error)
}

// CreatePageRequest captures the payload required to create a page.
type CreatePageRequest struct {
	ParentID  *uuid.UUID
	Slug      string
	Status    string
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
}

// MovePageRequest updates the hierarchical parent for a page.
type MovePageRequest struct {
	PageID      uuid.UUID
	NewParentID *uuid.UUID
	ActorID     uuid.UUID
}

// DeletePageRequest captures the information required to delete a page.
type DeletePageRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// CreatePageDraftRequest snapshots slot placements into a new version.
type CreatePageDraftRequest struct {
	PageID      uuid.UUID
	Widgets     map[string][]widgets.Instance
	CreatedBy   uuid.UUID
	BaseVersion *int
}

// PublishPageDraftRequest promotes a draft version to the published one.
type PublishPageDraftRequest struct {
	PageID      uuid.UUID
	Version     int
	PublishedBy uuid.UUID
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures page service behaviour.
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

// WithVersioning toggles the draft/publish lifecycle. When disabled the
// version operations refuse with ErrVersioningDisabled; reads of already
// persisted versions through GetEffectiveVersion keep working.
func WithVersioning(enabled bool) ServiceOption {
	return func(s *service) {
		s.versioning = enabled
	}
}

type service struct {
	pages      PageRepository
	versions   PageVersionRepository
	now        func() time.Time
	id         IDGenerator
	logger     interfaces.Logger
	versioning bool
}

// NewService constructs a page service instance.
func NewService(pageRepo PageRepository, versionRepo PageVersionRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:      pageRepo,
		versions:   versionRepo,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
		versioning: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	normalized, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy == uuid.Nil {
		return nil, ErrCreatorRequired
	}
	if req.UpdatedBy == uuid.Nil {
		return nil, ErrUpdaterRequired
	}

	if existing, err := s.pages.GetBySlug(ctx, normalized); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var nf *PageNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	if req.ParentID != nil {
		if _, err := s.pages.GetByID(ctx, *req.ParentID); err != nil {
			var nf *PageNotFoundError
			if errors.As(err, &nf) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "draft"
	}

	now := s.now()
	page := &Page{
		ID:        s.id(),
		ParentID:  cloneUUIDPointer(req.ParentID),
		Slug:      normalized,
		Status:    status,
		CreatedBy: req.CreatedBy,
		UpdatedBy: req.UpdatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.pages.Create(ctx, page)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pages.create", "page_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.pages.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Page, error) {
	if strings.TrimSpace(slugValue) == "" {
		return nil, ErrSlugRequired
	}
	return s.pages.GetBySlug(ctx, slugValue)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.pages.List(ctx)
}

func (s *service) ListChildren(ctx context.Context, parentID *uuid.UUID) ([]*Page, error) {
	return s.pages.ListByParent(ctx, parentID)
}

// Move reparents a page. It refuses assignments that would fold the hierarchy
// back on itself; the inheritance resolver depends on ancestry staying acyclic.
func (s *service) Move(ctx context.Context, req MovePageRequest) (*Page, error) {
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}

	page, err := s.pages.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	if req.NewParentID != nil {
		if *req.NewParentID == page.ID {
			return nil, ErrPageParentCycle
		}
		if _, err := s.pages.GetByID(ctx, *req.NewParentID); err != nil {
			var nf *PageNotFoundError
			if errors.As(err, &nf) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if err := s.ensureNoCycle(ctx, page.ID, *req.NewParentID); err != nil {
			return nil, err
		}
	}

	page.ParentID = cloneUUIDPointer(req.NewParentID)
	page.UpdatedAt = s.now()
	if req.ActorID != uuid.Nil {
		page.UpdatedBy = req.ActorID
	}

	return s.pages.Update(ctx, page)
}

func (s *service) Delete(ctx context.Context, req DeletePageRequest) error {
	if req.ID == uuid.Nil {
		return ErrPageRequired
	}
	if !req.HardDelete {
		return ErrPageSoftDeleteUnsupported
	}

	children, err := s.pages.ListByParent(ctx, &req.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return ErrPageHasChildren
	}

	return s.pages.Delete(ctx, req.ID)
}

// CreateDraft snapshots the provided slot placements into the next version
// number. When BaseVersion is supplied it must match the page's current
// version, which surfaces concurrent edits as ErrVersionConflict.
func (s *service) CreateDraft(ctx context.Context, req CreatePageDraftRequest) (*PageVersion, error) {
	if !s.versioning {
		return nil, ErrVersioningDisabled
	}
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}

	page, err := s.pages.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	if req.BaseVersion != nil && *req.BaseVersion != page.CurrentVersion {
		return nil, ErrVersionConflict
	}

	version := &PageVersion{
		// (page, version) is unique, so the id can be derived from it. This
		// keeps version identifiers stable across storage backends.
		ID:        identity.PageVersionUUID(page.ID, page.CurrentVersion+1),
		PageID:    page.ID,
		Version:   page.CurrentVersion + 1,
		Widgets:   cloneSlotWidgets(req.Widgets),
		CreatedBy: req.CreatedBy,
		CreatedAt: s.now(),
	}
	if version.Widgets == nil {
		version.Widgets = map[string][]widgets.Instance{}
	}

	created, err := s.versions.Create(ctx, version)
	if err != nil {
		return nil, err
	}

	page.CurrentVersion = version.Version
	page.UpdatedAt = s.now()
	if req.CreatedBy != uuid.Nil {
		page.UpdatedBy = req.CreatedBy
	}
	if _, err := s.pages.Update(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("pages.draft.create", "page_id", page.ID, "version", created.Version)
	return created, nil
}

// PublishDraft stamps the draft and points the page's published version at
// it. Published versions stay immutable: republishing the same number is a
// conflict, not an update.
func (s *service) PublishDraft(ctx context.Context, req PublishPageDraftRequest) (*PageVersion, error) {
	if !s.versioning {
		return nil, ErrVersioningDisabled
	}
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	if req.Version <= 0 {
		return nil, ErrPageVersionRequired
	}

	page, err := s.pages.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	version, err := s.versions.GetByPageAndVersion(ctx, req.PageID, req.Version)
	if err != nil {
		return nil, err
	}
	if version.PublishedAt != nil {
		return nil, ErrVersionAlreadyPublished
	}

	now := s.now()
	version.PublishedAt = &now
	if req.PublishedBy != uuid.Nil {
		publishedBy := req.PublishedBy
		version.PublishedBy = &publishedBy
	}

	updated, err := s.versions.Update(ctx, version)
	if err != nil {
		return nil, err
	}

	published := version.Version
	page.PublishedVersion = &published
	page.Status = "published"
	page.UpdatedAt = now
	if req.PublishedBy != uuid.Nil {
		page.UpdatedBy = req.PublishedBy
	}
	if _, err := s.pages.Update(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("pages.draft.publish", "page_id", page.ID, "version", published)
	return updated, nil
}

func (s *service) ListVersions(ctx context.Context, pageID uuid.UUID) ([]*PageVersion, error) {
	if !s.versioning {
		return nil, ErrVersioningDisabled
	}
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.versions.ListByPage(ctx, pageID)
}

// GetParent resolves the page's parent, nil at the root.
func (s *service) GetParent(ctx context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	if page.ParentID == nil {
		return nil, nil
	}
	return s.pages.GetByID(ctx, *page.ParentID)
}

// GetEffectiveVersion returns the currently published version snapshot, nil
// when the page has never been published. Absence is not an error.
func (s *service) GetEffectiveVersion(ctx context.Context, page *Page) (*PageVersion, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	if page.PublishedVersion == nil {
		return nil, nil
	}
	return s.versions.GetByPageAndVersion(ctx, page.ID, *page.PublishedVersion)
}

// ensureNoCycle climbs from the proposed parent up to the root and rejects
// the move when the page being moved appears on that path.
func (s *service) ensureNoCycle(ctx context.Context, pageID, newParentID uuid.UUID) error {
	visited := make(map[uuid.UUID]struct{})
	current := newParentID
	for {
		if current == pageID {
			return ErrPageParentCycle
		}
		if _, seen := visited[current]; seen {
			// Existing corruption above the new parent; refuse the move too.
			return ErrPageParentCycle
		}
		visited[current] = struct{}{}

		ancestor, err := s.pages.GetByID(ctx, current)
		if err != nil {
			var nf *PageNotFoundError
			if errors.As(err, &nf) {
				return nil
			}
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}
