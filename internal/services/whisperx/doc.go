// Package whisperx invokes the WhisperX speech recognizer as a container
// subprocess for the recognition stage.
//
// Each invocation gets a fresh scratch directory: the audio file is staged
// in, the container mounts the directory, and the first JSON file found
// afterwards is decoded into timestamped segments. Malformed individual
// segments are dropped; a missing segments array fails the call.
package whisperx
