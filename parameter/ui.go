package parameter

import "time"

// Sandbox Layout
const (
	// TopMargin for the title line
	TopMargin = 1

	// BottomMargin for the status and help lines
	BottomMargin = 2

	// CellsPerMetre maps the side view into terminal columns
	CellsPerMetre = 40.0

	// TensionBarWidth is the length of the status bar tension gauge
	TensionBarWidth = 20
)

// Sandbox Hand Simulation
const (
	// HandStep is the hand displacement per key press in metres
	HandStep = 0.02

	// HandReleaseHold keeps a released arrow visible before respawning a new one
	HandReleaseHold = 2 * time.Second

	// StatusMessageTimeout is how long status messages are displayed
	StatusMessageTimeout = 2 * time.Second

	// SlowMotionScale is the game clock rate while slow motion is on
	SlowMotionScale = 0.25
)
