// Package boards holds the static layouts a ghostbfs session is built from.
//
// Built-in boards:
//
//   - "12x12":        the default demo board, 102 enabled cells, one region.
//   - "open-12x12":   every cell enabled.
//   - "walled-12x12": open board with a single cell sealed off by walls.
//
// Layout files are YAML (JSON documents parse as YAML too) in either the
// descriptor form
//
//	name: tiny
//	start: 0
//	rows:
//	  - [{enabled: true, index: 0}, {enabled: false, index: 1}]
//	  - [{enabled: true, index: 2}, {enabled: true, index: 3}]
//
// or the pattern form, where "." is an enabled cell and "#" a wall:
//
//	name: tiny
//	pattern:
//	  - ".#"
//	  - ".."
//
// When start is omitted the agent starts on DefaultStart if that cell is
// enabled, otherwise on the first enabled cell.
package boards
