package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vidxiv/assets"
	"vidxiv/config"
	"vidxiv/types"
	"vidxiv/video"

	"github.com/google/uuid"
)

// PaperSource loads a paper with its text and figures.
type PaperSource interface {
	Load(ctx context.Context, paperID string) (*types.Paper, error)
}

// ScriptWriter turns a paper into a scene script.
type ScriptWriter interface {
	Write(ctx context.Context, p *types.Paper) (*types.Script, error)
}

// Narrator synthesizes one scene's narration and measures it.
type Narrator interface {
	Narrate(ctx context.Context, sceneIndex int, text, outPath string) (types.NarrationClip, error)
}

// AssetResolver yields the visual for a scene, degrading to a
// placeholder with a warning rather than failing.
type AssetResolver interface {
	Resolve(scene types.Scene, sceneIndex int, p *types.Paper) (assets.Asset, *types.Warning)
}

// SceneRenderer renders scene clips and title slides.
type SceneRenderer interface {
	RenderScene(ctx context.Context, index int, assetPath string, narration types.NarrationClip, outPath string) (types.SceneClip, error)
	RenderSlide(ctx context.Context, assetPath string, duration float64, outPath string) (types.SceneClip, error)
}

// Composer concatenates scene clips into a timeline.
type Composer interface {
	Compose(clips []types.SceneClip, outPath string) (types.Timeline, error)
}

// Mixer lays background music under a timeline.
type Mixer interface {
	Mix(timeline types.Timeline, music []byte, outPath string) (*types.Warning, error)
}

// Publisher pushes a finished artifact somewhere external.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, artifactPath string, s *types.Script) (string, error)
}

// Deps bundles the pipeline's collaborators. NewRenderer, Composer, and
// Mixer default to the ffmpeg-backed implementations when nil; Registry,
// Publishers, and States are optional.
type Deps struct {
	Source      PaperSource
	Scripts     ScriptWriter
	Narrator    Narrator
	Resolver    AssetResolver
	NewRenderer func(types.AspectMode) SceneRenderer
	Composer    Composer
	Mixer       Mixer
	Registry    Registry
	Publishers  []Publisher
	States      *StateStore
}

// Pipeline drives one paper through script, narration, rendering,
// composition, and mixing to a single video file.
type Pipeline struct {
	cfg  config.Config
	deps Deps
}

// NewPipeline creates a Pipeline, filling in default renderers.
func NewPipeline(cfg config.Config, deps Deps) *Pipeline {
	if deps.NewRenderer == nil {
		deps.NewRenderer = func(aspect types.AspectMode) SceneRenderer {
			return video.NewRenderer(aspect)
		}
	}
	if deps.Composer == nil {
		deps.Composer = ffmpegComposer{}
	}
	if deps.Mixer == nil {
		deps.Mixer = ffmpegMixer{}
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// Run executes the full pipeline for one paper. The returned artifact
// lives under the configured output directory. All intermediate files
// are cleaned up on both success and failure.
func (p *Pipeline) Run(ctx context.Context, paperID string, rcfg types.RenderConfig, progress Progress) (*types.VideoArtifact, error) {
	return p.RunWithID(ctx, uuid.NewString()[:8], paperID, rcfg, progress)
}

// StartAsync launches a run in the background and returns its ID
// immediately. Progress lands in the state store, if one is wired.
func (p *Pipeline) StartAsync(paperID string, rcfg types.RenderConfig) string {
	runID := uuid.NewString()[:8]
	if p.deps.States != nil {
		p.deps.States.Put(RunState{
			ID:        runID,
			PaperID:   paperID,
			Aspect:    rcfg.Aspect,
			Stage:     StageFetching,
			StartedAt: time.Now(),
		})
	}
	go func() {
		_, _ = p.RunWithID(context.Background(), runID, paperID, rcfg, nil)
	}()
	return runID
}

// RunWithID is Run with a caller-chosen run ID.
func (p *Pipeline) RunWithID(ctx context.Context, runID, paperID string, rcfg types.RenderConfig, progress Progress) (*types.VideoArtifact, error) {
	run := &runContext{
		pipeline:  p,
		id:        runID,
		paperID:   paperID,
		rcfg:      rcfg,
		progress:  progress,
		startedAt: time.Now(),
	}

	log.Printf("=== Run %s: paper %s (%s) ===", runID, paperID, rcfg.Aspect)
	artifact, err := run.execute(ctx)
	if err != nil {
		run.report(StageFailed, err.Error())
		run.persist(StageFailed, err, nil)
		return nil, err
	}
	run.report(StageDone, artifact.Path)
	run.persist(StageDone, nil, artifact)
	log.Printf("=== Run %s complete: %s (%.1fs) ===", runID, artifact.Path, artifact.DurationSec)
	return artifact, nil
}

// runContext carries the mutable state of one run.
type runContext struct {
	pipeline  *Pipeline
	id        string
	paperID   string
	rcfg      types.RenderConfig
	progress  Progress
	startedAt time.Time

	mu       sync.Mutex
	warnings []types.Warning

	sceneCount int
	script     *types.Script
}

func (r *runContext) execute(ctx context.Context) (*types.VideoArtifact, error) {
	p := r.pipeline
	key := types.GenerateKey(r.paperID, string(r.rcfg.Aspect), string(r.rcfg.Music))

	// A finished identical run short-circuits everything
	if p.deps.Registry != nil {
		if path, ok := p.deps.Registry.Lookup(ctx, key); ok {
			if _, err := os.Stat(path); err == nil {
				log.Printf("[%s] Reusing existing artifact %s", r.id, path)
				duration, _ := video.ProbeDuration(path)
				return &types.VideoArtifact{Path: path, DurationSec: duration}, nil
			}
		}
	}

	runDir, err := os.MkdirTemp(p.cfg.TempDir, "run_"+r.id+"_")
	if err != nil {
		return nil, &types.CompositionError{Stage: "setup", Err: err}
	}
	defer os.RemoveAll(runDir)

	// Stage 1: fetch
	r.report(StageFetching, r.paperID)
	paper, err := p.deps.Source.Load(ctx, r.paperID)
	if err != nil {
		return nil, err
	}

	// Stage 2: script
	r.report(StageScripting, paper.Title)
	script, err := p.deps.Scripts.Write(ctx, paper)
	if err != nil {
		return nil, err
	}
	r.script = script
	r.sceneCount = len(script.Scenes)
	log.Printf("[%s] Script ready: %d scene(s)", r.id, len(script.Scenes))

	// Stage 3: narrate and render every scene
	renderer := p.deps.NewRenderer(r.rcfg.Aspect)
	clips, err := r.renderScenes(ctx, renderer, paper, script, runDir)
	if err != nil {
		return nil, err
	}

	if p.cfg.IntroOutro {
		clips, err = r.wrapWithSlides(ctx, renderer, paper, clips, runDir)
		if err != nil {
			return nil, err
		}
	}

	// Stage 4: concatenate
	r.report(StageComposing, "")
	timeline, err := p.deps.Composer.Compose(clips, filepath.Join(runDir, "timeline.mp4"))
	if err != nil {
		return nil, err
	}
	log.Printf("[%s] Timeline composed: %.1fs", r.id, timeline.DurationSec)

	// Stage 5: music
	r.report(StageMixing, "")
	mixedPath := filepath.Join(runDir, "final.mp4")
	warning, err := p.deps.Mixer.Mix(timeline, r.rcfg.Music, mixedPath)
	if err != nil {
		return nil, err
	}
	if warning != nil {
		r.warn(*warning)
	}

	// Move into the output directory only once everything succeeded
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return nil, &types.CompositionError{Stage: "publish", Err: err}
	}
	finalPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("%s_%s.mp4", r.paperID, r.rcfg.Aspect))
	if err := moveFile(mixedPath, finalPath); err != nil {
		return nil, &types.CompositionError{Stage: "publish", Err: err}
	}

	duration, err := video.ProbeDuration(finalPath)
	if err != nil {
		duration = timeline.DurationSec
	}
	artifact := &types.VideoArtifact{
		Path:        finalPath,
		DurationSec: duration,
		Warnings:    r.snapshotWarnings(),
	}

	// Stage 6: best-effort publishing
	if len(p.deps.Publishers) > 0 {
		r.report(StagePublishing, "")
		for _, pub := range p.deps.Publishers {
			ref, err := pub.Publish(ctx, artifact.Path, script)
			if err != nil {
				log.Printf("[%s] Publish via %s failed: %v", r.id, pub.Name(), err)
				continue
			}
			log.Printf("[%s] Published via %s: %s", r.id, pub.Name(), ref)
		}
	}

	if p.deps.Registry != nil {
		if err := p.deps.Registry.Record(ctx, key, artifact.Path); err != nil {
			log.Printf("[%s] Failed to record run in registry: %v", r.id, err)
		}
	}
	return artifact, nil
}

// renderScenes fans scene narration and rendering out over a bounded
// worker pool. The first failure cancels the remaining workers and
// aborts the run.
func (r *runContext) renderScenes(ctx context.Context, renderer SceneRenderer, paper *types.Paper, script *types.Script, runDir string) ([]types.SceneClip, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.MaxConcurrentScenes)

	clips := make([]types.SceneClip, len(script.Scenes))
	errs := make([]error, len(script.Scenes))

	for i, scene := range script.Scenes {
		wg.Add(1)

		go func(idx int, scene types.Scene) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				errs[idx] = ctx.Err()
				return
			}

			r.reportScene(StageRendering, idx+1, fmt.Sprintf("scene %d/%d", idx+1, len(script.Scenes)))
			clip, err := r.renderScene(ctx, renderer, paper, scene, idx, runDir)
			if err != nil {
				errs[idx] = err
				cancel()
				return
			}
			clips[idx] = clip
			log.Printf("[%s] Scene %d/%d rendered (%.1fs)", r.id, idx+1, len(script.Scenes), clip.DurationSec)
		}(i, scene)
	}
	wg.Wait()

	// Surface the lowest-index real failure, not a cancellation echo
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
	}
	// Only context errors remain: the caller ended the run, so hand
	// the cancellation back untouched.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return clips, nil
}

func (r *runContext) renderScene(ctx context.Context, renderer SceneRenderer, paper *types.Paper, scene types.Scene, idx int, runDir string) (types.SceneClip, error) {
	narration, err := r.pipeline.deps.Narrator.Narrate(ctx, idx, scene.Narration, filepath.Join(runDir, fmt.Sprintf("narration_%03d.wav", idx)))
	if err != nil {
		return types.SceneClip{}, err
	}

	asset, warning := r.pipeline.deps.Resolver.Resolve(scene, idx, paper)
	if warning != nil {
		r.warn(*warning)
	}

	assetPath := filepath.Join(runDir, fmt.Sprintf("asset_%03d.png", idx))
	if err := video.SavePNG(asset.Image, assetPath); err != nil {
		return types.SceneClip{}, &types.CompositionError{Stage: "render", Err: err}
	}

	return renderer.RenderScene(ctx, idx, assetPath, narration, filepath.Join(runDir, fmt.Sprintf("scene_%03d.mp4", idx)))
}

// wrapWithSlides prepends the intro card and appends the outro card.
func (r *runContext) wrapWithSlides(ctx context.Context, renderer SceneRenderer, paper *types.Paper, clips []types.SceneClip, runDir string) ([]types.SceneClip, error) {
	introPath := filepath.Join(runDir, "intro.png")
	if err := video.SavePNG(assets.IntroSlide(paper.Title), introPath); err != nil {
		return nil, &types.CompositionError{Stage: "render", Err: err}
	}
	intro, err := renderer.RenderSlide(ctx, introPath, config.SlideDurationSec, filepath.Join(runDir, "intro.mp4"))
	if err != nil {
		return nil, err
	}

	outroPath := filepath.Join(runDir, "outro.png")
	if err := video.SavePNG(assets.OutroSlide(), outroPath); err != nil {
		return nil, &types.CompositionError{Stage: "render", Err: err}
	}
	outro, err := renderer.RenderSlide(ctx, outroPath, config.SlideDurationSec, filepath.Join(runDir, "outro.mp4"))
	if err != nil {
		return nil, err
	}

	out := make([]types.SceneClip, 0, len(clips)+2)
	out = append(out, intro)
	out = append(out, clips...)
	out = append(out, outro)
	return out, nil
}

func (r *runContext) warn(w types.Warning) {
	r.mu.Lock()
	r.warnings = append(r.warnings, w)
	r.mu.Unlock()
}

func (r *runContext) snapshotWarnings() []types.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *runContext) report(stage Stage, message string) {
	r.reportScene(stage, 0, message)
}

// reportScene is report with the 1-based scene index of the scene a
// rendering worker just picked up.
func (r *runContext) reportScene(stage Stage, sceneIndex int, message string) {
	if states := r.pipeline.deps.States; states != nil && stage != StageDone && stage != StageFailed {
		states.Put(RunState{
			ID:         r.id,
			PaperID:    r.paperID,
			Aspect:     r.rcfg.Aspect,
			Stage:      stage,
			SceneIndex: sceneIndex,
			SceneCount: r.sceneCount,
			Warnings:   r.snapshotWarnings(),
			StartedAt:  r.startedAt,
		})
	}
	if r.progress == nil {
		return
	}
	r.progress(Event{
		RunID:      r.id,
		Stage:      stage,
		SceneIndex: sceneIndex,
		SceneCount: r.sceneCount,
		Message:    message,
	})
}

// persist records the terminal state of the run if a store is wired.
func (r *runContext) persist(stage Stage, runErr error, artifact *types.VideoArtifact) {
	states := r.pipeline.deps.States
	if states == nil {
		return
	}
	state := RunState{
		ID:         r.id,
		PaperID:    r.paperID,
		Aspect:     r.rcfg.Aspect,
		Stage:      stage,
		SceneCount: r.sceneCount,
		Warnings:   r.snapshotWarnings(),
		StartedAt:  r.startedAt,
	}
	if runErr != nil {
		state.Error = runErr.Error()
	}
	if artifact != nil {
		state.ArtifactPath = artifact.Path
		state.DurationSec = artifact.DurationSec
	}
	states.Put(state)
}

// ffmpegComposer and ffmpegMixer adapt the video package functions to
// the pipeline interfaces.
type ffmpegComposer struct{}

func (ffmpegComposer) Compose(clips []types.SceneClip, outPath string) (types.Timeline, error) {
	return video.Compose(clips, outPath)
}

type ffmpegMixer struct{}

func (ffmpegMixer) Mix(timeline types.Timeline, music []byte, outPath string) (*types.Warning, error) {
	return video.Mix(timeline, music, outPath)
}

// moveFile renames src to dst, copying across filesystems if needed.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
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
	return os.Remove(src)
}
