package color

import (
	"os"
	"strings"
	"sync"
)

// Role is the closed enumeration a screen cell's highlight spec draws
// its foreground and background from. Pager-specific roles are part of
// the same enumeration so the renderer treats them uniformly.
type Role int

const (
	RoleNormal Role = iota
	RoleError
	RoleCommand
	RoleStatementTerminator
	RoleParam
	RoleComment
	RoleSearchMatch
	RoleOperator
	RoleEscape
	RoleQuote
	RoleRedirection
	RoleAutosuggestion
	RoleSelection
	RolePagerPrefix
	RolePagerCompletion
	RolePagerDescription
	RolePagerProgress
	RolePagerSecondaryPrefix
	RolePagerSecondaryCompletion
	RolePagerSecondaryDescription
	RolePagerSelectedPrefix
	RolePagerSelectedCompletion
	RolePagerSelectedDescription
	RolePagerSelectedBackground
	roleCount
)

var roleNames = [roleCount]string{
	RoleNormal:                    "normal",
	RoleError:                     "error",
	RoleCommand:                   "command",
	RoleStatementTerminator:       "statement_terminator",
	RoleParam:                     "param",
	RoleComment:                   "comment",
	RoleSearchMatch:               "search_match",
	RoleOperator:                  "operator",
	RoleEscape:                    "escape",
	RoleQuote:                     "quote",
	RoleRedirection:               "redirection",
	RoleAutosuggestion:            "autosuggestion",
	RoleSelection:                 "selection",
	RolePagerPrefix:               "prefix",
	RolePagerCompletion:           "completion",
	RolePagerDescription:          "description",
	RolePagerProgress:             "progress",
	RolePagerSecondaryPrefix:      "secondary_prefix",
	RolePagerSecondaryCompletion:  "secondary_completion",
	RolePagerSecondaryDescription: "secondary_description",
	RolePagerSelectedPrefix:       "selected_prefix",
	RolePagerSelectedCompletion:   "selected_completion",
	RolePagerSelectedDescription:  "selected_description",
	RolePagerSelectedBackground:   "selected_background",
}

func (r Role) isPager() bool { return r >= RolePagerPrefix }

// envName returns the fish_color_<role> / fish_pager_color_<role>
// variable name this role is read from.
func (r Role) envName() string {
	if r.isPager() {
		return "fish_pager_color_" + roleNames[r]
	}
	return "fish_color_" + roleNames[r]
}

// Highlight pairs a foreground and background Role with the two
// booleans fish attaches to every highlighted span: whether the token
// under it is a valid filesystem path, and whether it should be
// force-underlined regardless of role (valid path decoration).
type Highlight struct {
	Foreground    Role
	Background    Role
	ValidPath     bool
	ForceUnderline bool
}

// Environment resolves Roles to Specs by reading fish_color_*/
// fish_pager_color_* variables, lazily, caching until the observed
// environment version changes (Bump invalidates the cache).
type Environment struct {
	mu      sync.Mutex
	lookup  func(string) (string, bool)
	cache   map[Role]Spec
	version int
	cached  int
}

// NewEnvironment builds an Environment that reads from the process
// environment via os.LookupEnv.
func NewEnvironment() *Environment {
	return &Environment{lookup: os.LookupEnv, cache: make(map[Role]Spec)}
}

// NewEnvironmentWith builds an Environment over a custom variable
// lookup function, for testing or for embedding into a shell that
// manages its own variable table instead of the OS environment.
func NewEnvironmentWith(lookup func(string) (string, bool)) *Environment {
	return &Environment{lookup: lookup, cache: make(map[Role]Spec)}
}

// Bump invalidates the cache, forcing the next Resolve of each role to
// re-read its environment variable.
func (e *Environment) Bump() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.version++
}

// Resolve returns the Spec for role, consulting the cache first.
func (e *Environment) Resolve(role Role) Spec {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached != e.version {
		e.cache = make(map[Role]Spec)
		e.cached = e.version
	}
	if spec, ok := e.cache[role]; ok {
		return spec
	}
	spec := e.resolveLocked(role)
	e.cache[role] = spec
	return spec
}

func (e *Environment) resolveLocked(role Role) Spec {
	raw, ok := e.lookup(role.envName())
	if !ok || strings.TrimSpace(raw) == "" {
		return Spec{Color: Normal}
	}
	args := ParseArgs(strings.Fields(raw))
	spec := Spec{Attrs: args.Attrs}
	if len(args.Foreground) > 0 {
		spec.Color = args.Foreground[0]
	} else {
		spec.Color = Normal
	}
	return spec
}

// ResolvePair resolves both halves of a Highlight spec. A background
// role of RoleNormal means "inherit" and resolves to the zero/None
// Color rather than fish_color_normal's background, matching the
// Highlight spec's "background role normal means inherit" rule.
func (e *Environment) ResolvePair(h Highlight) (fg, bg Spec) {
	fg = e.Resolve(h.Foreground)
	if h.Background == RoleNormal {
		bg = Spec{Color: None}
	} else {
		bg = e.Resolve(h.Background)
	}
	if h.ForceUnderline {
		fg.Attrs.Underline = true
	}
	return fg, bg
}
