// Package userdata resolves the on-disk layout shmod works with: the
// installation root that ships builtin modules, the per-user state
// directory (index, activation markers, config), and the ordered list of
// module sources the index builder and resolver walk.
package userdata
