// Package viz shows the magic book in the terminal.
//
// The package implements the effect host using the Bubble Tea framework:
//
//   - [Book]: the widget; its open state drives emission
//   - [Model]: frame scheduling with tea.Tick, input and resize handling
//   - [Canvas]: half-block cells sampled from the software surface
//   - Theme selection with 4 built-in colour schemes
//
// # Key Bindings
//
//	Space/Enter - Open or close the book
//	B           - Extra burst of particles
//	T           - Cycle colour themes
//	P           - Pause/Resume
//	R           - Close the book and drop every particle
//	?           - Show help
//	Q           - Quit
package viz
