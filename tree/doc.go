// Package tree models a filtered view of a directory hierarchy as a tree of nodes.
//
// A Node records its filesystem path, a non-owning link to its parent, its depth below
// the traversal root and whether it is the last retained sibling. Children of a
// directory are filtered through a Predicate and sorted case-insensitively by path, so
// the same directory snapshot always yields the same tree.
//
// The package offers two things built on Node:
//
//   - Walker, a lazy pre-order iterator bounded by a maximum depth, used to preview a
//     directory before it is migrated.
//   - Render, a one-line textual form of a node with box drawing glyphs, suitable for
//     printing the walker output as an indented tree:
//
//	[0]:data/
//	[1]:├── run1/
//	[2]:│   └── scan.dat
//	[1]:└── notes.txt
package tree
