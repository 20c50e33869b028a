package eval

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// Params are task construction parameters (operand ranges, opponent kind).
type Params map[string]any

// Factory builds a fresh eval instance seeded for one trial. The seed is
// the trial index, so trials are reproducible and statistically independent.
type Factory func(seed int64) (Eval, error)

// Definition describes a registered evaluation.
type Definition struct {
	Name        string
	Description string
	DefaultRuns int
	Params      Params
	New         func(model string, seed int64, params Params) (Eval, error)
}

// Registry maps eval names to definitions. It is built explicitly at process
// start and handed to the CLI; there is no package-level mutable state.
type Registry struct {
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("eval: nil registry")
	}
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return errors.New("eval: definition missing name")
	}
	if def.New == nil {
		return fmt.Errorf("eval: definition %q missing constructor", name)
	}
	if def.DefaultRuns <= 0 {
		def.DefaultRuns = 10
	}
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("eval: duplicate definition %q", name)
	}
	if r.defs == nil {
		r.defs = make(map[string]Definition)
	}
	def.Name = name
	r.defs[name] = def
	return nil
}

func (r *Registry) Get(name string) (Definition, bool) {
	if r == nil || r.defs == nil {
		return Definition{}, false
	}
	def, ok := r.defs[strings.TrimSpace(name)]
	return def, ok
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Factory binds a definition to a model, merging default params with
// overrides, and returns the per-seed constructor the batch runner calls.
func (r *Registry) Factory(name, model string, overrides Params) (Factory, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("eval: unknown evaluation %q (available: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("eval: empty model")
	}

	params := make(Params, len(def.Params)+len(overrides))
	for k, v := range def.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}

	return func(seed int64) (Eval, error) {
		return def.New(model, seed, params)
	}, nil
}

// NewRand returns the trial-local random generator. One generator per trial,
// derived purely from the seed; nothing here touches a process-global source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
