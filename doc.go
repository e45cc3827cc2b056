// Package ghostbfs is a grid pathfinding demo: pick a destination cell and a
// ghost walks to it by following a breadth-first distance field.
//
// What is in the box?
//
//	• Grid model: rectangular boards of enabled cells and walls, row-major
//	  indices, 4-neighbour adjacency without wrap-around
//	• BFS: hop-count distance field from a source, with hooks and depth cap
//	• Session: destination selection, timer-driven greedy descent, snapshots
//	• Boards: built-in layouts plus YAML/JSON loading
//	• Surfaces: plain text, a tcell terminal, HTTP + websocket
//
// Packages:
//
//	gridgraph/    Grid, Distance, neighbour queries, connected components
//	bfs/          Propagate and PathTo over a Grid
//	session/      Session state machine, Scheduler, Snapshot
//	boards/       built-in boards, Load and Marshal
//	render/       Text and Terminal projections of a Snapshot
//	server/       HTTP routes and websocket stream for one Session
//	cmd/ghostbfs/ command-line entry point (term, serve, text modes)
//
// Quick ASCII example, destination X, agent G:
//
//	G 5 6 7
//	3 # # 8
//	2 1 X #
//
// Each tick the ghost moves to a neighbour whose distance is lower than its
// own, so it reaches X in as many steps as the field says.
//
//	go run ./cmd/ghostbfs -board walled-12x12 -mode term
package ghostbfs
