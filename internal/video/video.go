package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subclean/internal/subtitle"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// defines interface for video processing operations
type Processor interface {
	// extracts an embedded subtitle stream from a video container
	ExtractSubtitle(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractSubtitleOptions,
	) error
}

// holds options for subtitle extraction
type ExtractSubtitleOptions struct {
	Track int // Zero-based subtitle stream index within the container
}

// returns sensible defaults for subtitle extraction
func DefaultExtractSubtitleOptions() ExtractSubtitleOptions {
	return ExtractSubtitleOptions{Track: 0}
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	ffmpegPath string
}

func NewProcessor(ffmpegPath string) *DefaultProcessor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &DefaultProcessor{
		ffmpegPath: ffmpegPath,
	}
}

// ffmpeg subtitle encoder for each writable format
var subtitleCodecs = map[subtitle.Format]string{
	subtitle.FormatSRT:  "srt",
	subtitle.FormatVTT:  "webvtt",
	subtitle.FormatASS:  "ass",
	subtitle.FormatSSA:  "ssa",
	subtitle.FormatTTML: "ttml",
}

// extracts a subtitle stream, converted to the format of outputPath
func (p *DefaultProcessor) ExtractSubtitle(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	stream, err := extractStream(ctx, videoPath, outputPath, opts)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var stderr bytes.Buffer
	err = stream.
		SetFfmpegPath(p.ffmpegPath).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if i := strings.LastIndex(msg, "\n"); i >= 0 {
			msg = msg[i+1:]
		}
		return fmt.Errorf("ffmpeg extraction failed: %w: %s", err, msg)
	}

	return nil
}

// builds the ffmpeg invocation mapping one subtitle stream to outputPath
func extractStream(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) (*ffmpeg.Stream, error) {
	if opts.Track < 0 {
		return nil, fmt.Errorf("subtitle track must not be negative, got %d", opts.Track)
	}

	format, ok := subtitle.GetFormatFromExtension(outputPath)
	if !ok {
		return nil, fmt.Errorf(
			"unsupported output format %q: use .srt, .vtt, .ass, .ssa or .ttml",
			filepath.Ext(outputPath),
		)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Track), // Subtitle stream only
		"c:s": subtitleCodecs[format],
	}

	return ffmpeg.OutputContext(
		ctx,
		[]*ffmpeg.Stream{ffmpeg.Input(videoPath)},
		outputPath,
		kwargs,
	).OverWriteOutput(), nil
}
