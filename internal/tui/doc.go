// Package tui is the bubbletea live viewer launched by `trackgo live` and,
// with no subcommand at all, the top-level menu `trackgo` falls back to. It
// walks a menu of lattice presets, a small parameter-entry screen, then an
// animated view that replays a precomputed ring-tracking trajectory or
// Newton-orbit convergence history one frame per tick.
package tui
