// Package scaffold generates new module files from embedded templates. It
// powers the "shmod create" command, producing a file with a complete
// metadata header and the kind's composure "about" call, named so the index
// builder picks it up.
package scaffold
