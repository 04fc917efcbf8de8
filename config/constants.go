package config

// Rendering Constants
const (
	// MaxConcurrentScenes limits the number of scene clips rendered simultaneously
	MaxConcurrentScenes = 2

	// TrailingPadSec extends each scene's visual past the narration end in seconds
	TrailingPadSec = 0.3

	// SlideDurationSec is the display time for intro and outro slides
	SlideDurationSec = 3.0

	// FPS is the output video frame rate
	FPS = 24

	// SynthesisRetries is how many extra attempts narration synthesis gets per scene
	SynthesisRetries = 2
)

// Output Dimension Constants
const (
	// LandscapeWidth is the output width for 16:9 videos
	LandscapeWidth = 1280

	// LandscapeHeight is the output height for 16:9 videos
	LandscapeHeight = 720

	// PortraitWidth is the output width for 9:16 videos
	PortraitWidth = 720

	// PortraitHeight is the output height for 9:16 videos
	PortraitHeight = 1280
)

// Encoding Constants
const (
	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// PixelFormat keeps output playable on common players
	PixelFormat = "yuv420p"
)

// Audio Mix Constants
const (
	// MusicVolume scales background music relative to narration
	MusicVolume = 0.2
)

// Directory Constants
const (
	// OutputDir is the directory for finished videos
	OutputDir = "output"

	// TempDir is the directory for intermediate clips and audio
	TempDir = "/tmp"
)

// Script Constants
const (
	// DefaultSceneCount is the scene count hint passed to script generation
	DefaultSceneCount = 5

	// MaxTitleLength is the maximum character length for video titles
	MaxTitleLength = 100
)

// YouTube Constants
const (
	// YouTubeCategoryID for Science & Technology
	YouTubeCategoryID = "28"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"
)
