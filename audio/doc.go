// Package audio moves captured samples from the audio callback to the
// render loop.
//
// The capture side writes into a [Buffer], which publishes each update as a
// new immutable [Frame] through an atomic pointer. The reader takes one
// [Buffer.Snapshot] per render frame and never blocks the writer.
package audio
