package media_test

import (
	"testing"

	"scribe/internal/media"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		filename string
		want     media.Kind
	}{
		{"song.mp3", media.KindAudio},
		{"note.WAV", media.KindAudio},
		{"clip.mp4", media.KindVideo},
		{"clip.MOV", media.KindVideo},
		{"talk.mkv", media.KindVideo},
		{"photo.jpg", media.KindUnsupported},
		{"README", media.KindUnsupported},
		{"", media.KindUnsupported},
	}
	for _, tc := range cases {
		if got := media.Classify(tc.filename); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.filename, got, tc.want)
		}
	}
}

func TestIsTranscribable(t *testing.T) {
	if !media.IsTranscribable("a.mp4") {
		t.Fatal("expected mp4 to be transcribable")
	}
	if media.IsTranscribable("a.jpg") {
		t.Fatal("expected jpg to be rejected")
	}
}
