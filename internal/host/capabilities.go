package host

// optionalHooks are the functions module files may call without checking
// that they exist. Composure's metadata hooks come first, framework
// conveniences after.
var optionalHooks = []string{
	"cite",
	"about",
	"about-plugin",
	"about-alias",
	"about-completion",
	"about-function",
	"group",
	"param",
	"example",
	"composure_keywords",
	"_omb_module_require",
	"_omb_util_alias",
	"compdef",
}

// Capabilities returns every optional hook, in definition order.
func Capabilities() []string {
	out := make([]string, len(optionalHooks))
	copy(out, optionalHooks)
	return out
}

// Stubs returns the hooks h does not provide; the init script defines a
// no-op for each.
func Stubs(h Host) []string {
	provided := make(map[string]bool)
	for _, name := range h.Hooks() {
		provided[name] = true
	}
	var stubs []string
	for _, name := range optionalHooks {
		if !provided[name] {
			stubs = append(stubs, name)
		}
	}
	return stubs
}
