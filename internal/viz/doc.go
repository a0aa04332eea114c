// Package viz renders braking runs in the terminal.
//
//   - [Watch]: live Bubble Tea view of a running experiment
//   - [PlotSeries]: asciigraph charts for stored runs
//   - [Table]: lipgloss key/value panels for CLI summaries
//
// # Key Bindings (watch)
//
//	Space - Pause/Resume
//	R     - Reset to the initial flow and field
//	+/-   - Scale the magnetic field by 1.25
//	?     - Show help
//	Q     - Quit
package viz
