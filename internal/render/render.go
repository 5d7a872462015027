// Package render turns a report snapshot into exported artifacts. Each format
// is an independent renderer registered at init time; renderers share no
// mutable state, so a failure in one never affects the others.
package render

import (
	"context"
	"fmt"
	"image"
	"slices"
	"sync"
	"time"

	"github.com/apizzacone/subscrybe-easy-life/internal/report"
)

type (
	FormatType  string
	Constructor func() Renderer

	Renderer interface {
		Type() FormatType
		// Extension is the artifact's filename extension, without the dot.
		Extension() string
		Render(ctx context.Context, snapshot *report.Snapshot, opts Options) (*Artifact, error)
	}
)

// Options carries per-request rendering inputs.
type Options struct {
	// Surface is a raster of the report view, used only by the document
	// renderer. When nil the document renderer draws its own layout.
	Surface image.Image
}

// Artifact is one exported file: payload plus the name it should be saved
// under. Delivery (the actual save action) is the caller's concern.
type Artifact struct {
	Format      FormatType
	Filename    string
	Payload     []byte
	GeneratedAt time.Time
}

// Filename returns the export naming convention: report-subscriptions-<date>.<ext>.
func Filename(generatedAt time.Time, extension string) string {
	return fmt.Sprintf("report-subscriptions-%s.%s", generatedAt.Format("2006-01-02"), extension)
}

// Error is a typed per-format export failure. It never aborts sibling
// renderers; the caller decides how to surface it.
type Error struct {
	Format FormatType
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func failure(format FormatType, err error) error {
	return &Error{Format: format, Cause: err}
}

var (
	registry     = make(map[FormatType]Constructor)
	registryLock = sync.RWMutex{}
)

// Register adds a renderer constructor to the registry for the given format.
// It is thread-safe and overwrites any existing constructor for the same FormatType.
func Register(format FormatType, constructor Constructor) {
	registryLock.Lock()
	defer registryLock.Unlock()

	registry[format] = constructor
}

func New(format FormatType) (Renderer, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	constructor, exists := registry[format]
	if !exists {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return constructor(), nil
}

// All returns a sorted slice of all registered formats.
func All() []FormatType {
	registryLock.RLock()
	defer registryLock.RUnlock()

	formats := make([]FormatType, 0, len(registry))
	for format := range registry {
		formats = append(formats, format)
	}

	slices.Sort(formats)

	return formats
}
