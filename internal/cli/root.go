package cli

import (
	"github.com/mgpai22/subclean/internal/config"
	"github.com/mgpai22/subclean/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subclean [subtitle_file]",
	Short: "Remove advertising from subtitle files",
	Long: `Subclean removes advertising lines from subtitle files.

Every subtitle node whose text contains a phrase from the selected filter
profile is blanked; timing and node order are left untouched. The cleaned
file is written next to the input as output.<ext> unless -o is given.

Supports SRT, VTT, ASS/SSA and TTML.

Examples:
  subclean movie.srt
  subclean movie.srt -o movie.clean.srt -c
  subclean -i movie.ass --filter strict --clean`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: runClean,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVar(&verbose, "debug", false, "Alias for --verbose")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		BoolP("continue", "c", false, "Overwrite the output file if it already exists")
}
