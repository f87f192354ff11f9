// Package flatfile reads and writes the lattice description formats
// originally defined by trackcpp: the native flat-file dialect, and the
// legacy fixed-column tracy dialect. It also loads the companion kicktable
// grid files referenced by kicktable_pass elements.
package flatfile
