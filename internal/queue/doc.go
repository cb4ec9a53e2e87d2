// Package queue tracks transcription jobs in memory and exposes helpers for
// driving their lifecycle.
//
// The Store keeps four mutually exclusive sets under one mutex: the FIFO
// queue, the in-process set, and the completed and failed terminal maps.
// State does not survive a restart; the discovery scan rebuilds the queue
// from marker files on disk.
//
// Treat this package as the single source of truth for queue semantics.
package queue
