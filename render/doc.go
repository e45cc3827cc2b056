// Package render projects session.Snapshot values onto display surfaces.
//
// Text is a pure function from a snapshot and display Options to a string.
// Terminal draws the same projection on a tcell.Screen and turns mouse
// clicks and keys into session calls. Neither surface keeps algorithmic
// state; both toggles (borders, distances) affect presentation only.
//
// Glyphs:
//
//	G   agent
//	X   destination (when the agent is elsewhere)
//	#   wall
//	n   hop distance (when distances are shown and set)
//	.   enabled cell otherwise
package render
