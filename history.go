package digo

import "strings"

const (
	boldMode      = "\x1b[1m"
	resetBoldMode = "\x1b[22m"
)

// DependencyHistory is the ordered trail of keys visited by one resolution.
//
// A history is a value: Push returns an extended copy and never touches the
// receiver, so sibling dependencies of one constructor never see each other.
type DependencyHistory struct {
	items []string
}

// NewDependencyHistory returns an empty history.
func NewDependencyHistory() DependencyHistory {
	return DependencyHistory{}
}

// Push returns a copy of the history with key appended.
func (h DependencyHistory) Push(key InterfaceKey) DependencyHistory {
	items := make([]string, len(h.items), len(h.items)+1)
	copy(items, h.items)
	return DependencyHistory{items: append(items, key.String())}
}

// Contains reports whether key was already visited.
func (h DependencyHistory) Contains(key InterfaceKey) bool {
	id := key.String()
	for _, item := range h.items {
		if item == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the visited keys in order.
func (h DependencyHistory) Items() []string {
	items := make([]string, len(h.items))
	copy(items, h.items)
	return items
}

// Len returns the number of visited keys.
func (h DependencyHistory) Len() int {
	return len(h.items)
}

// String renders the trail as "A -> B -> A". Every occurrence of the first
// repeated key is highlighted in bold.
func (h DependencyHistory) String() string {
	dupe := ""
	seen := make(map[string]struct{}, len(h.items))
	for _, item := range h.items {
		if _, ok := seen[item]; ok {
			dupe = item
			break
		}
		seen[item] = struct{}{}
	}

	var b strings.Builder
	for i, item := range h.items {
		if i > 0 {
			b.WriteString(" -> ")
		}
		if dupe != "" && item == dupe {
			b.WriteString(boldMode)
			b.WriteString(item)
			b.WriteString(resetBoldMode)
			continue
		}
		b.WriteString(item)
	}
	return b.String()
}
