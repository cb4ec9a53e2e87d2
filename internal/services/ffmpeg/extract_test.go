package ffmpeg_test

import (
	"context"
	"errors"
	"testing"

	"scribe/internal/services/ffmpeg"
)

func TestExtractAudioBuildsNormalizedArgs(t *testing.T) {
	extractor := ffmpeg.NewExtractor("ffmpeg-test")

	var gotName string
	var gotArgs []string
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := extractor.ExtractAudio(context.Background(), "/media/clip.mp4", "/staging/clip.mp4.wav"); err != nil {
		t.Fatalf("ExtractAudio failed: %v", err)
	}
	if gotName != "ffmpeg-test" {
		t.Fatalf("unexpected binary: %q", gotName)
	}

	joined := map[string]string{}
	for i := 0; i+1 < len(gotArgs); i++ {
		joined[gotArgs[i]] = gotArgs[i+1]
	}
	if joined["-i"] != "/media/clip.mp4" {
		t.Fatalf("expected source in args, got %v", gotArgs)
	}
	if joined["-ar"] != "16000" || joined["-ac"] != "1" || joined["-c:a"] != "pcm_s16le" {
		t.Fatalf("expected mono 16kHz pcm output settings, got %v", gotArgs)
	}
	if gotArgs[len(gotArgs)-1] != "/staging/clip.mp4.wav" {
		t.Fatalf("expected dest as final arg, got %v", gotArgs)
	}
}

func TestExtractAudioPropagatesRunnerError(t *testing.T) {
	extractor := ffmpeg.NewExtractor("")
	boom := errors.New("exit status 1")
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return boom
	})
	if err := extractor.ExtractAudio(context.Background(), "a.mp4", "a.wav"); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}
