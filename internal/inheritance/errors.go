package inheritance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrPageRequired     = errors.New("inheritance: page is required")
	ErrProviderRequired = errors.New("inheritance: page provider is required")

	// ErrAncestryCycle indicates the parent chain revisited a page. The page
	// management subsystem guarantees acyclicity, so hitting this means data
	// corruption upstream; resolution fails loud instead of looping.
	ErrAncestryCycle = errors.New("inheritance: cycle detected in page ancestry")

	// ErrMaxDepthExceeded is the hard ascent cap backing the cycle guard.
	ErrMaxDepthExceeded = errors.New("inheritance: ancestry exceeds maximum supported depth")
)

// CycleError reports the page at which the ancestry chain folded back on
// itself, along with the path walked up to that point.
type CycleError struct {
	PageID uuid.UUID
	Path   []uuid.UUID
}

func (e *CycleError) Error() string {
	if e == nil {
		return ErrAncestryCycle.Error()
	}
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: page=%s", ErrAncestryCycle.Error(), e.PageID)
	}
	steps := make([]string, len(e.Path))
	for i, id := range e.Path {
		steps[i] = id.String()
	}
	return fmt.Sprintf("%s: page=%s path=%s", ErrAncestryCycle.Error(), e.PageID, strings.Join(steps, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrAncestryCycle
}
