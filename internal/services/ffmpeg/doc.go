// Package ffmpeg wraps the external ffmpeg binary for the audio extraction
// stage. Video inputs are demuxed and resampled to mono 16kHz PCM so the
// recognizer sees one normalized format regardless of source container.
package ffmpeg
