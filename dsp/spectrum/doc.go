// Package spectrum turns short blocks of audio samples into magnitude spectra.
//
// An [Analyzer] windows a block, runs a forward FFT through a cached
// algo-fft plan and keeps the one-sided bins that fall inside a configured
// frequency range. The resulting [Spectrum] is an immutable value that the
// envelope and visual stages consume once per frame.
package spectrum
