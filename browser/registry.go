package browser

import (
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownProfile is returned by Lookup when id (after alias resolution)
// names no registered profile.
type ErrUnknownProfile string

func (e ErrUnknownProfile) Error() string {
	return fmt.Sprintf("browser: unknown profile %q", string(e))
}

var registry = sync.OnceValue(func() map[string]*Profile {
	m := make(map[string]*Profile)
	for _, p := range []*Profile{chrome142, firefox141, safari17, edge142} {
		m[p.ID] = p
		for _, alias := range p.Alias {
			m[alias] = p
		}
	}
	return m
})

// Lookup returns the registered profile for id, resolving aliases such as
// "chrome" -> "chrome142". The zero value "" resolves to the default
// profile, chrome142.
func Lookup(id string) (*Profile, error) {
	if id == "" {
		id = "chrome"
	}
	m := registry()
	p, ok := m[id]
	if !ok {
		return nil, ErrUnknownProfile(id)
	}
	return p, nil
}

// MustLookup is Lookup but panics on an unknown id. Intended for package
// init-time use with literal, known-good ids.
func MustLookup(id string) *Profile {
	p, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return p
}

// IDs returns the canonical (non-alias) profile ids, sorted.
func IDs() []string {
	ids := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, p := range []*Profile{chrome142, firefox141, safari17, edge142} {
		if !seen[p.ID] {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Default returns the normative Chrome 142 profile.
func Default() *Profile { return chrome142 }
