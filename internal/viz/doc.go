// Package viz renders worlds in the terminal.
//
// [Canvas] is a Braille dot canvas; [View] maps world coordinates onto
// one. [Model] is a Bubble Tea program that ticks an engine at a fixed
// frame rate and draws the playground, constraint links, limb chains
// and node circles next to a live stats panel.
//
// # Key Bindings
//
//	Space - pause/resume
//	R     - rebuild the scene
//	Q     - quit
//	?     - help overlay
package viz
