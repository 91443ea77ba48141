// Package viz provides terminal-based visualization for XPBD scenes.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [NewInteractiveApp]: scene picker, per-scene tunable config, and live view
//   - [Model]: steps a scene.Scene and renders its particle cloud each tick
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Theme selection with 6 built-in color schemes
//
// # Key Bindings
//
//	Space      - Pause/Resume the solver
//	R          - Reset the scene
//	Arrows     - Orbit the camera
//	+/-        - Zoom
//	G          - Pin/release the highlighted particle
//	N          - Cycle which particle G grabs
//	W A S D E C - Drag the grabbed particle
//	T          - Cycle color themes
//	?          - Show help overlay
package viz
