// Package media classifies filenames into the media kinds the transcription
// pipeline understands. The classifier and the discovery scan share this one
// extension table so they always agree on what counts as transcribable.
package media

import (
	"path/filepath"
	"strings"
)

// Kind partitions media files by how the pipeline must treat them.
type Kind string

const (
	KindAudio       Kind = "audio"
	KindVideo       Kind = "video"
	KindUnsupported Kind = "unsupported"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
}

// Classify maps a filename's extension to its media kind. The comparison is
// case-insensitive.
func Classify(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := audioExtensions[ext]; ok {
		return KindAudio
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnsupported
}

// IsTranscribable reports whether the pipeline can process the filename.
func IsTranscribable(filename string) bool {
	return Classify(filename) != KindUnsupported
}
