// Package midi turns control-change messages from a MIDI input into
// mutations of the shared control state.
//
// A [Listener] polls a non-blocking [Port], backing off linearly while the
// port is silent, decodes each control change into an [Event] and applies
// every [Route] whose channel matches. The route "channel" is the
// control-change controller number (0-127); the MIDI channel nibble is only
// used for the optional channel filter held in the control state.
package midi
