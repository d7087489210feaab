package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrUnknownRenderer is returned by Get for names nobody registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrNotAcceptable is returned by Negotiate when no renderer produces any
	// of the accepted media types.
	ErrNotAcceptable = errors.New("render: no acceptable renderer")
)

// Registry holds renderers in registration order. The first renderer is the
// default answer to requests that accept anything.
type Registry struct {
	mu     sync.RWMutex
	order  []Renderer
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name. Empty and duplicate names fail.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, renderer)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// List returns the renderer names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Negotiate picks the renderer for an HTTP Accept header. Media ranges are
// tried by descending q value; among renderers producing the same media type
// the one registered first wins. An empty header accepts anything.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, ErrNotAcceptable
	}
	if strings.TrimSpace(accept) == "" {
		return r.order[0], nil
	}

	ranges, excluded := parseAccept(accept)
	for _, mediaRange := range ranges {
		for _, renderer := range r.order {
			if excluded[mediaTypeOf(renderer.ContentType())] {
				continue
			}
			if matchesRange(mediaRange, renderer.ContentType()) {
				return renderer, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotAcceptable, accept)
}

type acceptRange struct {
	mediaType string
	q         float64
}

// parseAccept returns the media ranges with q > 0, highest q first, and the
// media types excluded with q=0. Malformed entries are skipped.
func parseAccept(header string) ([]acceptRange, map[string]bool) {
	var ranges []acceptRange
	excluded := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q <= 0 {
			excluded[mediaType] = true
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q})
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })
	return ranges, excluded
}

func mediaTypeOf(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

func matchesRange(r acceptRange, contentType string) bool {
	mediaType := mediaTypeOf(contentType)
	if mediaType == "" {
		return false
	}
	if r.mediaType == "*/*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(r.mediaType, "/*"); ok {
		major, _, _ := strings.Cut(mediaType, "/")
		return major == prefix
	}
	return r.mediaType == mediaType
}
