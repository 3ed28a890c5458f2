package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/monodither/internal/database"
	"github.com/rmitchellscott/monodither/internal/dither"
	"github.com/rmitchellscott/monodither/internal/imageprocessing"
	"github.com/rmitchellscott/monodither/internal/logging"
)

// Response headers describing the returned buffer.
const (
	HeaderWidth  = "X-Image-Width"
	HeaderHeight = "X-Image-Height"
	HeaderMethod = "X-Dither-Method"
	HeaderRunID  = "X-Run-ID"
)

type ditherQuery struct {
	Method    string `form:"method" binding:"required,dithermethod"`
	Width     int    `form:"width" binding:"required,min=1"`
	Height    int    `form:"height" binding:"required,min=1"`
	Threshold *int   `form:"threshold"`
	FitWidth  int    `form:"fit_width" binding:"omitempty,min=1"`
	FitHeight int    `form:"fit_height" binding:"omitempty,min=1"`
	FitMode   string `form:"fit_mode" binding:"omitempty,oneof=fit fill"`
}

type presetQuery struct {
	Width  int `form:"width" binding:"required,min=1"`
	Height int `form:"height" binding:"required,min=1"`
}

// DitherHandler transforms a raw RGBA request body with the method named in
// the query string and responds with the raw RGBA result.
func (h *Handler) DitherHandler(c *gin.Context) {
	var q ditherQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	threshold := dither.DefaultThreshold
	if q.Threshold != nil {
		threshold = *q.Threshold
	}
	opts := imageprocessing.ProcessingOptions{
		Method:    q.Method,
		Threshold: threshold,
		FitWidth:  q.FitWidth,
		FitHeight: q.FitHeight,
		FitMode:   q.FitMode,
	}
	params := database.RunParams{
		Threshold: q.Threshold,
		FitWidth:  q.FitWidth,
		FitHeight: q.FitHeight,
		FitMode:   q.FitMode,
	}

	h.process(c, "", q.Width, q.Height, opts, params)
}

// PresetDitherHandler is DitherHandler with options taken from a preset.
func (h *Handler) PresetDitherHandler(c *gin.Context) {
	preset, err := h.presets.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var q presetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := database.RunParams{
		Threshold: preset.Threshold,
		FitWidth:  preset.FitWidth,
		FitHeight: preset.FitHeight,
		FitMode:   preset.FitMode,
	}
	h.process(c, preset.Name, q.Width, q.Height, preset.Options(), params)
}

func (h *Handler) process(c *gin.Context, presetName string, width, height int, opts imageprocessing.ProcessingOptions, params database.RunParams) {
	if err := h.checkPixels(width, height); err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	if opts.FitWidth > 0 && opts.FitHeight > 0 {
		if err := h.checkPixels(opts.FitWidth, opts.FitHeight); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	buf := &dither.PixelBuffer{Width: width, Height: height, Pix: body}
	result, err := imageprocessing.Process(buf, opts)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, dither.ErrInvalidShape) && !errors.Is(err, dither.ErrUnknownMethod) && !errors.Is(err, imageprocessing.ErrInvalidFit) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := result.Buffer
	logging.InfoWithComponent(logging.ComponentAPIDither, "Dithered buffer",
		"method", opts.Method, "preset", presetName,
		"width", width, "height", height,
		"output_width", out.Width, "output_height", out.Height,
		"duration", result.Duration)

	if runID, ok := h.recordRun(c, presetName, width, height, opts.Method, result, params); ok {
		c.Header(HeaderRunID, runID)
	}

	c.Header(HeaderWidth, strconv.Itoa(out.Width))
	c.Header(HeaderHeight, strconv.Itoa(out.Height))
	c.Header(HeaderMethod, opts.Method)
	c.Data(http.StatusOK, "application/octet-stream", out.Pix)
}

func (h *Handler) checkPixels(width, height int) error {
	// Compare by division so huge dimensions cannot wrap the product.
	if h.maxPixels > 0 && (height <= 0 || width > h.maxPixels/height) {
		return errTooManyPixels(width, height, h.maxPixels)
	}
	return nil
}

// recordRun stores the run when history is enabled. Failures are logged and
// do not fail the request.
func (h *Handler) recordRun(c *gin.Context, presetName string, width, height int, method string, result *imageprocessing.Result, params database.RunParams) (string, bool) {
	if h.db == nil {
		return "", false
	}

	run, err := database.NewDitherRun(method, presetName, params)
	if err != nil {
		logging.WarnWithComponent(logging.ComponentAPIDither, "Failed to build run record", "error", err)
		return "", false
	}
	run.Width, run.Height = width, height
	run.OutputWidth, run.OutputHeight = result.Buffer.Width, result.Buffer.Height
	run.BlackPixels = int64(result.BlackPixels)
	run.DurationMicros = result.Duration.Microseconds()
	run.ClientIP = c.ClientIP()

	if err := database.RecordRun(h.db.WithContext(c.Request.Context()), run); err != nil {
		logging.WarnWithComponent(logging.ComponentAPIDither, "Failed to record run", "error", err)
		return "", false
	}
	return run.ID.String(), true
}

func errTooManyPixels(width, height, limit int) error {
	return fmt.Errorf("%dx%d exceeds the limit of %d pixels", width, height, limit)
}
