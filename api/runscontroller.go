package api

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"vidxiv/orchestrator"
	"vidxiv/types"

	"github.com/gin-gonic/gin"
)

var (
	errMissingPaperID   = errors.New("paper_id is required")
	errBadMusicEncoding = errors.New("music must be base64-encoded")
)

// RegisterRunRoutes registers the pipeline run endpoints.
func RegisterRunRoutes(r *gin.Engine, pipeline *orchestrator.Pipeline, states *orchestrator.StateStore) {
	ctrl := &runsController{pipeline: pipeline, states: states}

	g := r.Group("/api/runs")
	g.POST("", ctrl.handleCreateRun)
	g.GET("", ctrl.handleListRuns)
	g.GET("/:id", ctrl.handleGetRun)
	g.GET("/:id/video", ctrl.handleDownloadVideo)
}

type runsController struct {
	pipeline *orchestrator.Pipeline
	states   *orchestrator.StateStore
}

// CreateRunRequest starts a pipeline run for one paper.
// Music is optional, base64-encoded audio. A multipart form with a
// "music" file part is accepted as an alternative.
type CreateRunRequest struct {
	PaperID string `json:"paper_id" binding:"required"`
	Aspect  string `json:"aspect"`
	Music   string `json:"music,omitempty"`
}

// CreateRunResponse returns the ID to poll for progress.
type CreateRunResponse struct {
	RunID string `json:"run_id"`
}

// handleCreateRun launches a run asynchronously and returns 202 with its ID.
func (ctrl *runsController) handleCreateRun(c *gin.Context) {
	paperID, aspectParam, music, err := ctrl.parseCreateRun(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aspect := types.AspectLandscape
	switch aspectParam {
	case "", string(types.AspectLandscape):
	case string(types.AspectPortrait):
		aspect = types.AspectPortrait
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "aspect must be landscape or portrait"})
		return
	}

	runID := ctrl.pipeline.StartAsync(paperID, types.RenderConfig{Aspect: aspect, Music: music})
	c.JSON(http.StatusAccepted, CreateRunResponse{RunID: runID})
}

// parseCreateRun accepts either a JSON body or a multipart form with an
// attached music file.
func (ctrl *runsController) parseCreateRun(c *gin.Context) (paperID, aspect string, music []byte, err error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		paperID = c.PostForm("paper_id")
		aspect = c.PostForm("aspect")
		if paperID == "" {
			return "", "", nil, errMissingPaperID
		}
		if fh, ferr := c.FormFile("music"); ferr == nil {
			f, oerr := fh.Open()
			if oerr != nil {
				return "", "", nil, oerr
			}
			defer f.Close()
			music, err = io.ReadAll(f)
			if err != nil {
				return "", "", nil, err
			}
		}
		return paperID, aspect, music, nil
	}

	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", "", nil, err
	}
	if req.Music != "" {
		decoded, derr := base64.StdEncoding.DecodeString(req.Music)
		if derr != nil {
			return "", "", nil, errBadMusicEncoding
		}
		music = decoded
	}
	return req.PaperID, req.Aspect, music, nil
}

// handleGetRun returns the current state of one run.
func (ctrl *runsController) handleGetRun(c *gin.Context) {
	state, ok := ctrl.states.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// handleListRuns returns all known runs.
func (ctrl *runsController) handleListRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": ctrl.states.List()})
}

// handleDownloadVideo serves the finished artifact of a run.
func (ctrl *runsController) handleDownloadVideo(c *gin.Context) {
	state, ok := ctrl.states.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if state.Stage != orchestrator.StageDone || state.ArtifactPath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "run has no finished video"})
		return
	}
	c.FileAttachment(state.ArtifactPath, filepath.Base(state.ArtifactPath))
}
