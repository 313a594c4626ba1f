package domain

import "strings"

// Scope is the ordered chain of group ids containing a layer or group,
// outermost first. The root of the tree has an empty scope.
type Scope []string

// scopeSeparator joins scope segments into map keys. Group ids never contain it.
const scopeSeparator = "\x00"

// Depth returns the number of groups enclosing the owner of the scope.
func (s Scope) Depth() int {
	return len(s)
}

// Key returns a string usable as a map key for the whole path. Every
// segment is prefixed by the separator, so the root and a path holding one
// empty id get different keys.
func (s Scope) Key() string {
	var b strings.Builder
	for _, id := range s {
		b.WriteString(scopeSeparator)
		b.WriteString(id)
	}
	return b.String()
}

// Compact returns s without empty segments. An empty id names no group, so
// layers carrying one belong to the enclosing group.
func (s Scope) Compact() Scope {
	for i, id := range s {
		if id != "" {
			continue
		}
		out := make(Scope, i, len(s))
		copy(out, s[:i])
		for _, rest := range s[i+1:] {
			if rest != "" {
				out = append(out, rest)
			}
		}
		return out
	}
	return s
}

// HasPrefix reports whether prefix is an ancestor path of (or equal to) s.
func (s Scope) HasPrefix(prefix Scope) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, id := range prefix {
		if s[i] != id {
			return false
		}
	}
	return true
}

// Equal reports whether both scopes name the same path.
func (s Scope) Equal(other Scope) bool {
	return len(s) == len(other) && s.HasPrefix(other)
}

// Child returns the scope of a direct child of the group named id inside s.
// The receiver is never modified.
func (s Scope) Child(id string) Scope {
	next := make(Scope, len(s), len(s)+1)
	copy(next, s)
	return append(next, id)
}

// Clone returns an independent copy of the scope.
func (s Scope) Clone() Scope {
	if s == nil {
		return nil
	}
	next := make(Scope, len(s))
	copy(next, s)
	return next
}

// Last returns the innermost group id, or "" for the root scope.
func (s Scope) Last() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// ParseScope splits a slash separated path ("g1/g2") into a Scope.
// Empty segments are skipped, so "" and "/" both name the root.
func ParseScope(path string) Scope {
	scope := Scope{}
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			scope = append(scope, part)
		}
	}
	return scope
}

// String renders the scope in the slash separated form accepted by ParseScope.
func (s Scope) String() string {
	return strings.Join(s, "/")
}
