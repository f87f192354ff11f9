// Package viz renders tracking results to the terminal: a Braille-dot
// [Canvas] for phase-space trails, asciigraph line charts for a stored
// trajectory or a Newton-iteration convergence history, and the lipgloss
// styles/themes shared with the live TUI in internal/tui.
package viz
