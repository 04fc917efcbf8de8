package video

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"vidxiv/types"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// durationTolerance bounds the allowed drift between the summed clip
// durations and the probed timeline duration, in seconds.
const durationTolerance = 0.5

// Compose concatenates scene clips into a single timeline, in index
// order, hard cuts only. All clips must share the same frame size;
// matching encode settings let the concat run as a stream copy.
func Compose(clips []types.SceneClip, outPath string) (types.Timeline, error) {
	if err := validateClips(clips); err != nil {
		return types.Timeline{}, &types.CompositionError{Stage: "concat", Err: err}
	}

	listPath := filepath.Join(filepath.Dir(outPath), "concat_list.txt")
	if err := writeConcatList(clips, listPath); err != nil {
		return types.Timeline{}, &types.CompositionError{Stage: "concat", Err: err}
	}
	defer os.Remove(listPath)

	err := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Run()
	if err != nil {
		return types.Timeline{}, &types.CompositionError{Stage: "concat", Err: fmt.Errorf("ffmpeg concat failed: %w", err)}
	}

	actual, err := ProbeDuration(outPath)
	if err != nil {
		return types.Timeline{}, &types.CompositionError{Stage: "concat", Err: err}
	}

	var expected float64
	for _, c := range clips {
		expected += c.DurationSec
	}
	if math.Abs(actual-expected) > durationTolerance {
		os.Remove(outPath)
		return types.Timeline{}, &types.CompositionError{
			Stage: "concat",
			Err:   fmt.Errorf("timeline duration %.2fs drifted from expected %.2fs", actual, expected),
		}
	}

	return types.Timeline{Path: outPath, DurationSec: actual}, nil
}

func validateClips(clips []types.SceneClip) error {
	if len(clips) == 0 {
		return errors.New("no scene clips to concatenate")
	}
	w, h := clips[0].Width, clips[0].Height
	for _, c := range clips {
		if c.DurationSec <= 0 {
			return fmt.Errorf("clip %s has non-positive duration", c.Path)
		}
		if c.Width != w || c.Height != h {
			return fmt.Errorf("clip %s is %dx%d, expected %dx%d", c.Path, c.Width, c.Height, w, h)
		}
		if _, err := os.Stat(c.Path); err != nil {
			return fmt.Errorf("clip missing: %w", err)
		}
	}
	return nil
}

// writeConcatList emits the demuxer list file, one clip per line.
func writeConcatList(clips []types.SceneClip, listPath string) error {
	var b strings.Builder
	for _, c := range clips {
		abs, err := filepath.Abs(c.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return os.WriteFile(listPath, []byte(b.String()), 0644)
}
