// Package activation persists which modules are enabled.
//
// Each enabled (kind, name) is one marker file at <root>/<kind>/<name> whose
// content is the RFC 3339 time it was enabled. Enabling and disabling a
// module touch only that module's marker, so operations on different modules
// never interfere, even across processes. Two processes toggling the same
// module at the same moment race without a lock and the last writer wins;
// for an interactive single-user tool that is accepted.
package activation
