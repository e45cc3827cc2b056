// Package session owns one interactive ghostbfs board: the grid, the current
// destination, the distance field computed from it, the agent's position,
// and the handle of the timer that animates the agent.
//
// Selection protocol
//
//	Select(idx) clears the previous destination and then the whole distance
//	field, labels idx with 0, propagates BFS from it, and restarts the
//	animation timer. Every selection rebuilds the field from scratch.
//
//	NoDestination ──Select──▶ DestinationSet ──Select──▶ DestinationSet
//	      ▲                          │
//	      └──────────Reset───────────┘
//
// Animation
//
//	Step moves the agent onto frontier neighbors whose distance is strictly
//	less than the distance of the cell it stood on when the step began.
//	Under StepLastQualifying every qualifying neighbor is taken in left, up,
//	down, right order and the last one is where the agent ends; StepMinimum
//	takes the single lowest neighbor instead. When the agent stands on the
//	destination the timer is cancelled.
//
//	Step is driven by a Scheduler. TickerScheduler fires on a time.Ticker;
//	ManualScheduler fires only when told to, for tests and step-through UIs.
//	At most one timer is active per Session; a superseded timer's late ticks
//	are discarded.
//
// Unreachable destinations
//
//	If the agent's component does not contain the destination, the agent's
//	cell keeps an unset distance, no neighbor ever compares less, and the
//	timer keeps firing until the next Select or Reset. The session logs a
//	warning when this happens; CanAdvance reports false throughout.
//
// Concurrency
//
//	All methods are safe for concurrent use. A selection (including its BFS)
//	and a tick each run to completion under the session lock. OnChange
//	callbacks run outside the lock with a value Snapshot.
package session
