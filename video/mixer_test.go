package video

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vidxiv/types"
)

func TestMixWithoutMusic(t *testing.T) {
	dir := t.TempDir()
	timelinePath := filepath.Join(dir, "timeline.mp4")
	if err := os.WriteFile(timelinePath, []byte("timeline bytes"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	outPath := filepath.Join(dir, "final.mp4")
	warning, err := Mix(types.Timeline{Path: timelinePath, DurationSec: 10}, nil, outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning != nil {
		t.Errorf("unexpected warning: %+v", warning)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(b) != "timeline bytes" {
		t.Errorf("output content = %q", b)
	}
}

func TestMixDegradesOnCorruptMusic(t *testing.T) {
	dir := t.TempDir()
	timelinePath := filepath.Join(dir, "timeline.mp4")
	if err := os.WriteFile(timelinePath, []byte("timeline bytes"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	failProbe := func(string) (float64, error) {
		return 0, errors.New("invalid data found when processing input")
	}

	outPath := filepath.Join(dir, "final.mp4")
	warning, err := mixWithProbe(failProbe, types.Timeline{Path: timelinePath, DurationSec: 10}, []byte("not an audio file"), outPath)
	if err != nil {
		t.Fatalf("corrupt music should degrade, not fail: %v", err)
	}
	if warning == nil {
		t.Fatal("expected a music warning")
	}
	if warning.Kind != types.WarningMusic {
		t.Errorf("warning kind = %q", warning.Kind)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("narration-only output not written: %v", err)
	}
	if string(b) != "timeline bytes" {
		t.Errorf("output content = %q, expected the untouched timeline", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "music_track")); !os.IsNotExist(err) {
		t.Errorf("temporary music track was not removed")
	}
}

func TestMixMissingTimeline(t *testing.T) {
	dir := t.TempDir()
	_, err := Mix(types.Timeline{Path: filepath.Join(dir, "nope.mp4")}, nil, filepath.Join(dir, "final.mp4"))
	if err == nil {
		t.Fatal("expected error for missing timeline")
	}
}

func TestMusicWarningShape(t *testing.T) {
	w := musicWarning(os.ErrNotExist)
	if w.Kind != types.WarningMusic {
		t.Errorf("warning kind = %q", w.Kind)
	}
	if w.SceneIndex != -1 {
		t.Errorf("warning scene index = %d, expected -1 for a run-level warning", w.SceneIndex)
	}
}
