package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"vidxiv/api"
	"vidxiv/assets"
	"vidxiv/config"
	"vidxiv/kafka"
	"vidxiv/orchestrator"
	"vidxiv/paper"
	"vidxiv/script"
	"vidxiv/storage"
	"vidxiv/tts"
	"vidxiv/types"
	"vidxiv/upload"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	pipeline, states := buildPipeline(cfg)

	// Queue intake is optional; the HTTP API always runs
	if os.Getenv("KAFKA_BOOTSTRAP_SERVERS") != "" {
		go consumeRenderRequests(pipeline)
	} else {
		log.Println("Kafka not configured; queue intake disabled")
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(pipeline, states)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/runs")
	log.Println("  GET  /api/runs")
	log.Println("  GET  /api/runs/:id")
	log.Println("  GET  /api/runs/:id/video")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildPipeline wires the pipeline from environment configuration.
// Registry and publishers stay nil when unconfigured.
func buildPipeline(cfg config.Config) (*orchestrator.Pipeline, *orchestrator.StateStore) {
	states, err := orchestrator.NewStateStore(cfg.OutputDir)
	if err != nil {
		log.Fatalf("failed to initialize state store: %v", err)
	}

	deps := orchestrator.Deps{
		Source:   paper.NewLoader(),
		Scripts:  script.NewWriter(script.NewDefaultProvider(cfg.CohereAPIKey, os.Getenv("COHERE_MODEL")), config.DefaultSceneCount),
		Narrator: tts.NewNarrator(tts.NewHTTPSynthesizer(cfg.TTSBaseURL, cfg.TTSVoice)),
		Resolver: assets.NewResolver(os.Getenv("CARD_FONT")),
		States:   states,
	}

	if cfg.RedisAddr != "" {
		registry, err := orchestrator.NewRedisRegistry(orchestrator.RedisRegistryConfig{
			Addr:     cfg.RedisAddr,
			Password: os.Getenv("REDIS_PASS"),
		})
		if err != nil {
			log.Printf("Warning: run registry disabled: %v", err)
		} else {
			deps.Registry = registry
		}
	}

	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewS3(context.Background(), storage.S3Config{
			Region:       os.Getenv("S3_REGION"),
			Profile:      os.Getenv("S3_PROFILE"),
			UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
		})
		if err != nil {
			log.Printf("Warning: S3 publishing disabled: %v", err)
		} else {
			deps.Publishers = append(deps.Publishers, storage.NewPublisher(s3Client, cfg.S3Bucket, cfg.S3Prefix))
		}
	}

	if cfg.YouTubeCredentials != "" {
		yt, err := upload.NewYouTube(cfg.YouTubeCredentials)
		if err != nil {
			log.Printf("Warning: YouTube publishing disabled: %v", err)
		} else {
			deps.Publishers = append(deps.Publishers, yt)
		}
	}

	return orchestrator.NewPipeline(cfg, deps), states
}

// consumeRenderRequests blocks on the Kafka consumer until shutdown.
func consumeRenderRequests(pipeline *orchestrator.Pipeline) {
	err := kafka.StartWithGracefulShutdown(kafka.ConsumerConfig{
		Brokers: kafka.GetBrokers(),
		Topic:   kafka.GetTopic(),
		GroupID: kafka.GetGroupID(),
		Handler: func(ctx context.Context, req kafka.RenderRequest) error {
			rcfg := types.RenderConfig{Aspect: types.AspectMode(req.Aspect)}
			if rcfg.Aspect != types.AspectPortrait {
				rcfg.Aspect = types.AspectLandscape
			}
			if req.MusicURL != "" {
				music, err := fetchMusic(req.MusicURL)
				if err != nil {
					log.Printf("⚠️  Could not fetch music %s, rendering without: %v", req.MusicURL, err)
				} else {
					rcfg.Music = music
				}
			}
			_, err := pipeline.Run(ctx, req.PaperID, rcfg, nil)
			return err
		},
	})
	if err != nil {
		log.Printf("Kafka consumer stopped: %v", err)
	}
}

func fetchMusic(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
