// Package pitch time-stretches and pitch-shifts ranges of a loaded signal.
//
// A [Processor] wraps an immutable source segment and a phase vocoder
// engine. Time stretching alone goes straight through the vocoder. Pitch
// shifting stretches by stretch*pitch and then linearly resamples back to
// the stretched duration, which raises or lowers every frequency by the
// pitch factor.
package pitch
