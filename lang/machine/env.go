package machine

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Environment is the flat name -> integer mapping for the language's global
// scope: a single hash map, no scoping, no frames. It is backed by
// dolthub/swiss instead of a bare Go map.
type Environment struct {
	m *swiss.Map[string, int64]
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{m: swiss.NewMap[string, int64](8)}
}

// Load returns env[name], or 0 if name has never been assigned; reading an
// undeclared variable is not an error.
func (e *Environment) Load(name string) int64 {
	v, ok := e.m.Get(name)
	if !ok {
		return 0
	}
	return v
}

// Store sets env[name] = v, declaring it if this is its first assignment.
func (e *Environment) Store(name string, v int64) {
	e.m.Put(name, v)
}

// Snapshot returns a copy of the environment's contents as a plain Go map,
// used by tests to assert on final variable values without depending on
// swiss's iteration order.
func (e *Environment) Snapshot() map[string]int64 {
	out := make(map[string]int64, e.m.Count())
	e.m.Iter(func(k string, v int64) (stop bool) {
		out[k] = v
		return false
	})
	return out
}

// Names returns the sorted list of variable names currently held.
func (e *Environment) Names() []string {
	snap := e.Snapshot()
	names := maps.Keys(snap)
	slices.Sort(names)
	return names
}
