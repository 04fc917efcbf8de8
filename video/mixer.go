package video

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"vidxiv/config"
	"vidxiv/types"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Mix lays background music under the timeline's narration and writes
// the final video. Music problems are recoverable: a bad track yields
// the narration-only video plus a warning instead of a failure. A nil
// warning and nil error means music was mixed (or none was requested).
func Mix(timeline types.Timeline, music []byte, outPath string) (*types.Warning, error) {
	return mixWithProbe(ProbeDuration, timeline, music, outPath)
}

func mixWithProbe(probe func(path string) (float64, error), timeline types.Timeline, music []byte, outPath string) (*types.Warning, error) {
	if len(music) == 0 {
		if err := copyFile(timeline.Path, outPath); err != nil {
			return nil, &types.CompositionError{Stage: "mux", Err: err}
		}
		return nil, nil
	}

	musicPath := filepath.Join(filepath.Dir(outPath), "music_track")
	if err := os.WriteFile(musicPath, music, 0644); err != nil {
		return nil, &types.CompositionError{Stage: "mix", Err: err}
	}
	defer os.Remove(musicPath)

	// Reject undecodable tracks up front
	if _, err := probe(musicPath); err != nil {
		log.Printf("⚠️  Music track unusable, producing narration-only video: %v", err)
		warning := musicWarning(err)
		if err := copyFile(timeline.Path, outPath); err != nil {
			return nil, &types.CompositionError{Stage: "mux", Err: err}
		}
		return warning, nil
	}

	if err := mixTracks(timeline.Path, musicPath, outPath); err != nil {
		log.Printf("⚠️  Music mix failed, producing narration-only video: %v", err)
		warning := musicWarning(err)
		if err := copyFile(timeline.Path, outPath); err != nil {
			return nil, &types.CompositionError{Stage: "mux", Err: err}
		}
		return warning, nil
	}
	return nil, nil
}

// mixTracks loops the music under the narration, ducked to a fixed
// fraction of its level, cut at the timeline's end.
func mixTracks(timelinePath, musicPath, outPath string) error {
	main := ffmpeg.Input(timelinePath)
	music := ffmpeg.Input(musicPath, ffmpeg.KwArgs{"stream_loop": -1})

	ducked := music.Audio().Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", config.MusicVolume)})
	mixed := ffmpeg.Filter(
		[]*ffmpeg.Stream{main.Audio(), ducked},
		"amix",
		ffmpeg.Args{"inputs=2:duration=first:normalize=0"},
	)

	err := ffmpeg.Output([]*ffmpeg.Stream{main.Video(), mixed}, outPath, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": config.AudioCodec,
		"b:a": config.AudioBitrate,
	}).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("ffmpeg mix failed: %w", err)
	}
	return nil
}

func musicWarning(err error) *types.Warning {
	return &types.Warning{
		Kind:       types.WarningMusic,
		SceneIndex: -1,
		Message:    fmt.Sprintf("background music skipped: %v", err),
	}
}

// copyFile copies the finished timeline into place unchanged.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
