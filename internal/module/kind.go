package module

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four module kinds. The set is closed: adding a
// kind requires an index schema major version bump.
type Kind string

const (
	BehaviorExtension Kind = "behavior-extension"
	ShortcutSet       Kind = "shortcut-set"
	InputCompletion   Kind = "input-completion"
	CallableRoutine   Kind = "callable-routine"
)

// kindConvention describes how files of one kind are laid out on disk.
type kindConvention struct {
	dir     string // directory name under a source root, e.g. "plugins"
	suffix  string // file suffix stripped to derive the module name
	about   string // composure hook carrying the module description
	aliases []string
}

var conventions = map[Kind]kindConvention{
	BehaviorExtension: {dir: "plugins", suffix: ".plugin.bash", about: "about-plugin", aliases: []string{"plugin", "plugins"}},
	ShortcutSet:       {dir: "aliases", suffix: ".aliases.bash", about: "about-alias", aliases: []string{"alias", "aliases"}},
	InputCompletion:   {dir: "completion", suffix: ".completion.bash", about: "about-completion", aliases: []string{"completion", "completions"}},
	CallableRoutine:   {dir: "functions", suffix: ".functions.bash", about: "about-function", aliases: []string{"function", "functions"}},
}

// AllKinds returns every kind in the default load precedence: behavior
// extensions first so later kinds may reference what they define.
func AllKinds() []Kind {
	return []Kind{BehaviorExtension, ShortcutSet, InputCompletion, CallableRoutine}
}

// ParseKind converts a canonical kind name or one of its short aliases
// ("plugin", "aliases", "completion", "function", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range AllKinds() {
		if s == string(k) {
			return k, nil
		}
		for _, a := range conventions[k].aliases {
			if s == a {
				return k, nil
			}
		}
	}
	return "", fmt.Errorf("unknown module kind %q (want one of %s)", s, kindList())
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := conventions[k]
	return ok
}

// Dir returns the directory name that holds modules of this kind inside a
// source root.
func (k Kind) Dir() string { return conventions[k].dir }

// Suffix returns the file name suffix shared by every module of this kind.
func (k Kind) Suffix() string { return conventions[k].suffix }

// AboutHook returns the composure function a module of this kind calls to
// describe itself (e.g. "about-plugin").
func (k Kind) AboutHook() string { return conventions[k].about }

// NameFromFile derives the module name from a file basename. It returns
// false when the basename does not carry this kind's suffix or the remaining
// name is empty.
func (k Kind) NameFromFile(base string) (string, bool) {
	suffix := k.Suffix()
	if suffix == "" || !strings.HasSuffix(base, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(base, suffix)
	if name == "" {
		return "", false
	}
	return name, true
}

// FileName returns the basename a module called name of this kind must have.
func (k Kind) FileName(name string) string { return name + k.Suffix() }

func (k Kind) String() string { return string(k) }

func kindList() string {
	names := make([]string, 0, len(conventions))
	for _, k := range AllKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Order is a kind precedence. Kinds missing from the order sort after the
// listed ones, in default precedence.
type Order []Kind

// DefaultOrder is the documented load precedence.
func DefaultOrder() Order { return Order(AllKinds()) }

// ParseOrder parses a list of kind names (aliases allowed). Duplicates are
// rejected so a typo cannot silently demote a kind.
func ParseOrder(names []string) (Order, error) {
	if len(names) == 0 {
		return DefaultOrder(), nil
	}
	seen := make(map[Kind]bool, len(names))
	order := make(Order, 0, len(names))
	for _, n := range names {
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("kind %q listed twice in kind order", k)
		}
		seen[k] = true
		order = append(order, k)
	}
	return order, nil
}

// Rank returns the position of k in the order.
func (o Order) Rank(k Kind) int {
	for i, ok := range o {
		if ok == k {
			return i
		}
	}
	for i, dk := range AllKinds() {
		if dk == k {
			return len(o) + i
		}
	}
	return len(o) + len(conventions)
}

// Less orders keys by kind precedence, then by name.
func (o Order) Less(a, b Key) bool {
	ra, rb := o.Rank(a.Kind), o.Rank(b.Kind)
	if ra != rb {
		return ra < rb
	}
	return a.Name < b.Name
}
