package upload

import (
	"context"
	"fmt"
	"log"
	"os"

	"vidxiv/config"
	"vidxiv/paper"
	"vidxiv/types"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube publishes finished videos to a channel via a service account.
type YouTube struct {
	service *youtube.Service
}

// NewYouTube builds an uploader from a service account JSON file.
func NewYouTube(serviceAccountFile string) (*YouTube, error) {
	ctx := context.Background()

	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	client := jwtConfig.Client(ctx)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTube{service: service}, nil
}

func (u *YouTube) Name() string { return "youtube" }

// Publish uploads the video with metadata derived from the script and
// returns the resulting video ID.
func (u *YouTube) Publish(ctx context.Context, artifactPath string, s *types.Script) (string, error) {
	file, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("📤 Uploading: %s (%.2f MB)", artifactPath, float64(fileInfo.Size())/(1024*1024))

	vid := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       s.Title,
			Description: buildDescription(s),
			Tags:        []string{"research", "science", "paper explained", "AI"},
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, vid)
	call = call.Media(file)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("✅ Uploaded! https://youtube.com/watch?v=%s", response.Id)
	return response.Id, nil
}

func buildDescription(s *types.Script) string {
	return fmt.Sprintf(
		"%s\n\n"+
			"🔗 Paper: %s\n\n"+
			"Narrated walkthrough generated from the paper.\n"+
			"#research #science #paper",
		s.Title,
		paper.AbsURL(s.PaperID),
	)
}
