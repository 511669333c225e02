// Package viz provides the terminal view of a falling body.
//
// The live view is a Bubble Tea program that steps one body per frame and
// draws it next to its closed-form counterpart:
//
//   - [Model]: the interactive drop, with live parameter editing
//   - [Canvas]: Braille-based pixel canvas for the drop column
//   - [Camera]: spring-smoothed viewport that follows the body
//   - [Analysis]: post-impact comparison of both models
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	R       - Restart the drop
//	W / B   - Next world / ball preset (restarts)
//	Tab     - Select gravity, drag or mass
//	Up/Down - Adjust the selected parameter without restarting
//	A       - Toggle the analytic overlay
//	Q       - Quit
package viz
