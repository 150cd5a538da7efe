package models

// Scope selects which volumes a run operates on
type Scope string

const (
	// ScopeSelf limits the run to volumes attached to the local instance
	ScopeSelf Scope = "self"
	// ScopeAll covers every volume visible in the region
	ScopeAll Scope = "all"
)

// ParseScope maps the optional positional argument to a Scope.
// Only the literal "all" selects ScopeAll.
func ParseScope(args []string) Scope {
	if len(args) > 0 && args[0] == string(ScopeAll) {
		return ScopeAll
	}
	return ScopeSelf
}
