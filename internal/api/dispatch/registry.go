// Package dispatch routes /api requests to versioned resource handler
// sets. The registry is populated once at startup from an explicit
// registration table, validated, frozen, and then shared read-only by
// every request; nothing is discovered or loaded per request.
package dispatch

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
)

var (
	resourcePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	versionPattern  = regexp.MustCompile(`^v\d+$`)
)

// Registry maps (version, resource) to the handler set serving that
// resource. Misregistration is a programming error and panics at
// startup; after Freeze the registry is immutable and safe for
// concurrent use without locking.
type Registry struct {
	versions map[int]map[string]http.Handler
	current  int
	frozen   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{versions: make(map[int]map[string]http.Handler)}
}

// Register adds a resource handler set under an API version. It panics
// on a frozen registry, an invalid version or resource name, a nil
// handler, or a duplicate registration — all of which are startup
// misconfiguration, never per-request conditions.
func (reg *Registry) Register(version int, resource string, handler http.Handler) {
	switch {
	case reg.frozen:
		panic("dispatch: Register called after Freeze")
	case version < 1:
		panic(fmt.Sprintf("dispatch: invalid API version %d", version))
	case !resourcePattern.MatchString(resource):
		panic(fmt.Sprintf("dispatch: invalid resource name %q", resource))
	case handler == nil:
		panic(fmt.Sprintf("dispatch: nil handler for v%d/%s", version, resource))
	}

	resources, ok := reg.versions[version]
	if !ok {
		resources = make(map[string]http.Handler)
		reg.versions[version] = resources
	}
	if _, exists := resources[resource]; exists {
		panic(fmt.Sprintf("dispatch: duplicate registration for v%d/%s", version, resource))
	}
	resources[resource] = handler
}

// Freeze validates the finished table, derives the current version as
// the maximum registered one, and marks the registry immutable. It
// panics when nothing was registered.
func (reg *Registry) Freeze() {
	if len(reg.versions) == 0 {
		panic("dispatch: Freeze called on an empty registry")
	}
	for version := range reg.versions {
		if version > reg.current {
			reg.current = version
		}
	}
	reg.frozen = true
}

// CurrentVersion returns the highest registered API version.
func (reg *Registry) CurrentVersion() int {
	if !reg.frozen {
		panic("dispatch: CurrentVersion before Freeze")
	}
	return reg.current
}

// HasVersion reports whether any resources are registered for a version.
func (reg *Registry) HasVersion(version int) bool {
	_, ok := reg.versions[version]
	return ok
}

// lookup returns the handler set for a (version, resource) pair.
func (reg *Registry) lookup(version int, resource string) (http.Handler, bool) {
	resources, ok := reg.versions[version]
	if !ok {
		return nil, false
	}
	h, ok := resources[resource]
	return h, ok
}

// Resources returns the sorted resource names of a version, for logging.
func (reg *Registry) Resources(version int) []string {
	names := make([]string, 0, len(reg.versions[version]))
	for name := range reg.versions[version] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
