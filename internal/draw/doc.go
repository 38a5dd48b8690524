// Package draw defines the drawing vocabulary shared by the particle
// effect and its outputs.
//
// A tick of the effect never touches pixels directly. It issues calls on a
// [Surface]; a [Recorder] turns those calls into a [Frame], which can be
// replayed later onto any other surface (the software rasteriser, the SVG
// exporter, a test double).
//
//   - [Circle]: a disc filled with a [Radial] gradient in its local frame
//   - [Rect]: a rectangle filled with a gradient in surface coordinates
//   - [ClearCmd]: reset the surface to fully transparent
package draw
