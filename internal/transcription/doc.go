// Package transcription contains the job processing core: the pipeline that
// drives a filename through audio extraction, speech recognition, and
// metadata integration; the single worker loop that drains the job store;
// the startup discovery scan; and the durable terminal-state marker files.
//
// Failure semantics are uniform: any stage error becomes the job's terminal
// failure, recorded in the store and as a .failed marker, and the worker
// moves on. There is no automatic retry; removing the marker and restarting
// makes the scanner reconsider a file.
package transcription
