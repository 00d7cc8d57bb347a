// Package platform provides the filesystem primitives shmod relies on for
// crash safety: atomic file replacement (write to a temporary sibling, then
// rename) and permission handling that is a no-op on Windows.
package platform
