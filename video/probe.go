package video

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns a media file's duration in seconds via ffprobe.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probeJSON string) (float64, error) {
	var parsed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &parsed); err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output: %w", err)
	}
	d, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration %q: %w", parsed.Format.Duration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ffprobe reported non-positive duration %.3f", d)
	}
	return d, nil
}
