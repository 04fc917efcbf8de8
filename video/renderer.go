package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"vidxiv/config"
	"vidxiv/types"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Renderer turns per-scene assets and narration into uniform scene
// clips that the composer can concatenate without re-encoding.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a Renderer for the given output aspect.
func NewRenderer(aspect types.AspectMode) *Renderer {
	w, h := Dimensions(aspect)
	return &Renderer{width: w, height: h}
}

// Dimensions returns the output frame size for an aspect mode.
func Dimensions(aspect types.AspectMode) (int, int) {
	if aspect == types.AspectPortrait {
		return config.PortraitWidth, config.PortraitHeight
	}
	return config.LandscapeWidth, config.LandscapeHeight
}

// RenderScene renders one scene clip: the still asset shown for the
// narration's duration plus a short trailing pad, narration embedded as
// the audio track. The clip duration is fixed here and carried on the
// returned SceneClip.
func (r *Renderer) RenderScene(ctx context.Context, index int, assetPath string, narration types.NarrationClip, outPath string) (types.SceneClip, error) {
	if err := ctx.Err(); err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: err}
	}

	duration := narration.DurationSec + config.TrailingPadSec

	still := ffmpeg.Input(assetPath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": config.FPS,
		"t":         fmt.Sprintf("%.3f", duration),
	})
	// Pad narration with silence so the trailing pad has an audio track
	audio := ffmpeg.Input(narration.Path).Audio().Filter("apad", ffmpeg.Args{})

	frames := r.fitToFrame(still)

	err := ffmpeg.Output([]*ffmpeg.Stream{frames, audio}, outPath, r.encodeArgs(duration)).
		OverWriteOutput().Run()
	if err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: fmt.Errorf("ffmpeg failed for scene %d: %w", index+1, err)}
	}

	actual, err := ProbeDuration(outPath)
	if err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: err}
	}

	return types.SceneClip{
		Index:       index,
		Path:        outPath,
		DurationSec: actual,
		Width:       r.width,
		Height:      r.height,
	}, nil
}

// RenderSlide renders a silent title card clip of fixed duration, used
// for the intro and outro.
func (r *Renderer) RenderSlide(ctx context.Context, assetPath string, duration float64, outPath string) (types.SceneClip, error) {
	if err := ctx.Err(); err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: err}
	}

	still := ffmpeg.Input(assetPath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": config.FPS,
		"t":         fmt.Sprintf("%.3f", duration),
	})
	// Silent audio track keeps the stream layout identical to scene clips
	silence := ffmpeg.Input("anullsrc=channel_layout=stereo:sample_rate=44100", ffmpeg.KwArgs{
		"f": "lavfi",
		"t": fmt.Sprintf("%.3f", duration),
	})

	frames := r.fitToFrame(still)

	err := ffmpeg.Output([]*ffmpeg.Stream{frames, silence}, outPath, r.encodeArgs(duration)).
		OverWriteOutput().Run()
	if err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: fmt.Errorf("ffmpeg failed for slide: %w", err)}
	}

	actual, err := ProbeDuration(outPath)
	if err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: err}
	}

	return types.SceneClip{
		Path:        outPath,
		DurationSec: actual,
		Width:       r.width,
		Height:      r.height,
	}, nil
}

// fitToFrame letterboxes the input into the output frame without
// distortion: scale down to fit, pad the rest, normalize SAR.
func (r *Renderer) fitToFrame(in *ffmpeg.Stream) *ffmpeg.Stream {
	return in.
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", r.width, r.height)}).
		Filter("pad", ffmpeg.Args{fmt.Sprintf("%d:%d:(ow-iw)/2:(oh-ih)/2:color=0xF8F9FA", r.width, r.height)}).
		Filter("setsar", ffmpeg.Args{"1"})
}

func (r *Renderer) encodeArgs(duration float64) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"c:v":     config.VideoCodec,
		"c:a":     config.AudioCodec,
		"b:a":     config.AudioBitrate,
		"preset":  config.VideoPreset,
		"pix_fmt": config.PixelFormat,
		"r":       config.FPS,
		"t":       fmt.Sprintf("%.3f", duration),
	}
}

// SavePNG writes an image to disk for use as an ffmpeg still input.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
