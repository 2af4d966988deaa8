package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/insightloop/insightloop/pkg/config"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// outputPrefix finds the -of argument the transcriber passed to the binary.
func outputPrefix(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "-of" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatal("missing -of argument")
	return ""
}

func TestWhisperTranscribe_ParsesOutput(t *testing.T) {
	audioPath := writeTempAudio(t)

	w := NewWhisperTranscriber(&config.WhisperConfig{BinaryPath: "whisper-cli", Threads: 2}, nil)
	w.run = func(_ context.Context, _ string, args ...string) error {
		out := `{
			"result": {"language": "en"},
			"transcription": [
				{"offsets": {"from": 0, "to": 1500}, "text": " Hello there."},
				{"offsets": {"from": 1500, "to": 4000}, "text": " How are you?"},
				{"offsets": {"from": 4000, "to": 4000}, "text": "  "}
			]
		}`
		return os.WriteFile(outputPrefix(t, args)+".json", []byte(out), 0o644)
	}

	result, err := w.Transcribe(context.Background(), audioPath, "auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FullText != "Hello there. How are you?" {
		t.Fatalf("unexpected full text %q", result.FullText)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments got %d", len(result.Segments))
	}
	if result.Segments[0].StartTime != 0 || result.Segments[0].EndTime != 1.5 {
		t.Fatalf("unexpected offsets %+v", result.Segments[0])
	}
	if result.Language != "en" {
		t.Fatalf("unexpected language %q", result.Language)
	}
	if result.Duration != 4.0 {
		t.Fatalf("unexpected duration %v", result.Duration)
	}
}

func TestWhisperTranscribe_BinaryFailure(t *testing.T) {
	audioPath := writeTempAudio(t)

	w := NewWhisperTranscriber(nil, nil)
	w.run = func(_ context.Context, _ string, _ ...string) error {
		return errors.New("exit status 1")
	}

	if _, err := w.Transcribe(context.Background(), audioPath, "en"); err == nil {
		t.Fatal("expected error when binary fails")
	}
}

func TestWhisperTranscribe_MissingAudioFile(t *testing.T) {
	w := NewWhisperTranscriber(nil, nil)
	w.run = func(_ context.Context, _ string, _ ...string) error {
		t.Fatal("binary should not run for a missing file")
		return nil
	}

	if _, err := w.Transcribe(context.Background(), "/nonexistent/audio.wav", "en"); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestWhisperTranscribe_DefaultsLanguageToAuto(t *testing.T) {
	audioPath := writeTempAudio(t)

	var gotArgs []string
	w := NewWhisperTranscriber(nil, nil)
	w.run = func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		out := `{"result": {"language": "vi"}, "transcription": [{"offsets": {"from": 0, "to": 1000}, "text": "xin chao"}]}`
		return os.WriteFile(outputPrefix(t, args)+".json", []byte(out), 0o644)
	}

	result, err := w.Transcribe(context.Background(), audioPath, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for i, arg := range gotArgs {
		if arg == "-l" && i+1 < len(gotArgs) && gotArgs[i+1] == "auto" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected -l auto in args %v", gotArgs)
	}
	if result.Language != "vi" {
		t.Fatalf("unexpected detected language %q", result.Language)
	}
}
