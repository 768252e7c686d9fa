// Package envelope implements per-bin peak hold with geometric decay, the
// metering behaviour used to smooth successive spectra: a louder bin is
// taken instantly, otherwise the held value fades by a decay factor each
// update.
package envelope
