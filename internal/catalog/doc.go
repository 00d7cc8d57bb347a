// Package catalog is the command-facing surface of shmod. A Catalog
// composes the regenerable module index (read-mostly, rebuilt when missing,
// incompatible or older than the staleness budget) with the activation
// store (the source of truth for what is enabled), and computes the ordered
// list of modules the shell loads at startup.
package catalog
