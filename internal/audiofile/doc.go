// Package audiofile decodes audio files into mono segments and writes
// rendered results as PCM WAV.
//
// Decoders are looked up by file extension in a [Registry]. The default
// registry understands WAV, AIFF, MP3 and Ogg Vorbis.
package audiofile
