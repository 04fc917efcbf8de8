package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vidxiv/types"
)

// Publisher copies finished videos into an S3 bucket, alongside a small
// metadata record describing the run.
type Publisher struct {
	s3     *S3
	bucket string
	prefix string
}

// NewPublisher creates a Publisher targeting the given bucket.
// prefix may be empty or end in "/".
func NewPublisher(s3 *S3, bucket, prefix string) *Publisher {
	return &Publisher{s3: s3, bucket: bucket, prefix: prefix}
}

func (p *Publisher) Name() string { return "s3" }

// Publish uploads the video and its metadata record, returning the
// object key of the video.
func (p *Publisher) Publish(ctx context.Context, artifactPath string, s *types.Script) (string, error) {
	f, err := os.Open(artifactPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	videoKey := p.prefix + "videos/" + filepath.Base(artifactPath)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := p.s3.Put(ctx, p.bucket, videoKey, f, "video/mp4"); err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	meta := map[string]interface{}{
		"paper_id":     s.PaperID,
		"title":        s.Title,
		"scene_count":  len(s.Scenes),
		"published_at": time.Now().UTC(),
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}

	metaKey := p.prefix + "videos/" + s.PaperID + ".json"
	if err := p.s3.Put(ctx, p.bucket, metaKey, bytes.NewReader(b), "application/json"); err != nil {
		return "", fmt.Errorf("failed to upload metadata: %w", err)
	}
	return videoKey, nil
}
