// Package registry discovers module files and maintains the index snapshot.
//
// The Builder walks the configured source directories and produces an Index
// without writing anything; SaveIndex and LoadIndex persist that snapshot as a
// versioned JSON document that is replaced atomically. The Resolver answers
// "which file defines kind/name right now" straight from the filesystem, using
// the same directory priority as the Builder, for callers that must not trust
// a possibly stale index. Search ranks index entries for the search command.
package registry
