// Package catalog loads and serves the contest-kit reference data. Kits are
// external configuration, parsed from YAML into an immutable Registry built
// once at startup and injected into the engine; nothing mutates it afterward,
// so concurrent reads need no locking.
package catalog

import (
	"fmt"
	"sort"

	"github.com/parkfair/contest-engine/internal/domain"
)

// Registry is the read-only keyed lookup from violation code to contest kit.
// Multiple codes may alias the same kit.
type Registry struct {
	kits    map[string]*domain.ContestKit
	aliases map[string]string
}

// NewRegistry builds a registry from validated kits and an alias map. Alias
// targets must name a known kit.
func NewRegistry(kits []*domain.ContestKit, aliases map[string]string) (*Registry, error) {
	byID := make(map[string]*domain.ContestKit, len(kits))
	for _, kit := range kits {
		if _, dup := byID[kit.ViolationID]; dup {
			return nil, fmt.Errorf("duplicate kit %q", kit.ViolationID)
		}
		byID[kit.ViolationID] = kit
	}
	for alias, target := range aliases {
		if _, ok := byID[target]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown kit %q", alias, target)
		}
	}
	return &Registry{kits: byID, aliases: aliases}, nil
}

// Get returns the kit for a violation code, following aliases. Nil when no
// kit covers the code; that is an expected condition, not an error.
func (r *Registry) Get(code string) *domain.ContestKit {
	if kit, ok := r.kits[code]; ok {
		return kit
	}
	if target, ok := r.aliases[code]; ok {
		return r.kits[target]
	}
	return nil
}

// Len returns the number of kits (aliases excluded).
func (r *Registry) Len() int {
	return len(r.kits)
}

// Codes returns the sorted violation ids of all kits.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.kits))
	for code := range r.kits {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
