// Package render turns per-cell hues into pixels.
//
// The window is recursively quartered into a grid of [Cell]s. Each frame a
// [Scene] supplies a hue for every cell centre, which [Raster] converts to
// RGB through HSL and fills into an RGBA image. [Window] shows that image
// with ebiten and maps the keyboard onto the control store; [WritePNG]
// renders a single frame with its overlay to a PNG.
package render
