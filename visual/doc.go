// Package visual maps a grid cell, a frame time and the current spectrum to
// a hue. Each control.Mode owns one pure function; Dispatch selects it.
//
// The functions are closed-form and unguarded: some divide by coordinates or
// by time and produce NaN or infinities near zero. Hue sanitises those
// results so the renderer always receives a value in [0, 1).
package visual
