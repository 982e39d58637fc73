package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subclean/internal/ffmpeg"
	"github.com/mgpai22/subclean/internal/fileio"
	"github.com/mgpai22/subclean/internal/subtitle"
	"github.com/mgpai22/subclean/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract a subtitle track from a video file",
	Long: `Extract an embedded subtitle stream from a video file so it can be cleaned.

The output format follows the extension of the output path (srt, vtt, ass,
ssa, ttml). Without -o the subtitle is written next to the video as .srt.

Examples:
  subclean extract movie.mkv
  subclean extract movie.mkv -o movie.ass --track 1`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("track", "t", 0, "Zero-based subtitle stream index within the container")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	track, _ := cmd.Flags().GetInt("track")
	outputPath, _ := cmd.Flags().GetString("output")
	overwrite, _ := cmd.Flags().GetBool("continue")

	if outputPath == "" {
		outputPath = defaultExtractOutput(videoPath)
	}
	if track < 0 {
		return fmt.Errorf("invalid track %d: must not be negative", track)
	}
	if _, ok := subtitle.GetFormatFromExtension(outputPath); !ok {
		return fmt.Errorf(
			"unsupported output extension %q: use .srt, .vtt, .ass, .ssa or .ttml",
			filepath.Ext(outputPath),
		)
	}

	exists, err := fileio.Exists(outputPath)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return fmt.Errorf(
			"output file already exists: %s (use -c to overwrite)",
			outputPath,
		)
	}

	ffmpegPath, err := ffmpeg.Path(cfg.FFmpegPath)
	if err != nil {
		return err
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"track", track,
		"ffmpeg", ffmpegPath,
	)

	processor := video.NewProcessor(ffmpegPath)

	opts := video.DefaultExtractSubtitleOptions()
	opts.Track = track

	ctx := context.Background()
	if err := processor.ExtractSubtitle(
		ctx,
		videoPath,
		outputPath,
		opts,
	); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)

	return nil
}

func defaultExtractOutput(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".srt"
}
