// Package module defines the data model shared by every shmod component:
// the closed set of module kinds and their file conventions, the Module
// record produced by discovery, the (kind, name) natural key, and the error
// taxonomy surfaced to users (NotFound, NotEnabled).
package module
