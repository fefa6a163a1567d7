// Package libdiff computes structural diffs between plain value trees.
//
// # Usage
//
//	// Compute the diff between two nodes; nil means equal
//	diff := libdiff.Diff(oldNode, newNode)
//
// Diffs are themselves plain nodes. A changed leaf becomes an object
// with "-" holding the old value and "+" the new one; an object diff
// holds one field per changed key; an array diff lists per-index change
// records. Diff trees can be stored, transmitted and rendered like any
// other plain document.
package libdiff
