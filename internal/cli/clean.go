package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/subclean/internal/clean"
	"github.com/mgpai22/subclean/internal/fileio"
	"github.com/mgpai22/subclean/internal/filter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().
		StringP("input", "i", "", "Input subtitle file (alternative to the positional argument)")
	rootCmd.Flags().
		StringP("filter", "f", "", "Filter profile name or path to a JSON blacklist (default from SUBCLEAN_DEFAULT_FILTER, main)")
	rootCmd.Flags().
		Bool("clean", false, "Delete the input file after the output has been written")
}

// raw command line values for a cleaning run
type cleanOptions struct {
	Input        string
	Output       string
	Overwrite    bool
	Filter       string
	DeleteSource bool
}

func runClean(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return errors.New("missing arguments: provide a subtitle file")
	}

	opts := cleanOptions{Input: input}
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.Overwrite, _ = cmd.Flags().GetBool("continue")
	opts.Filter, _ = cmd.Flags().GetString("filter")
	opts.DeleteSource, _ = cmd.Flags().GetBool("clean")
	if opts.Filter == "" {
		opts.Filter = cfg.DefaultFilter
	}

	runCfg, profile, err := resolveRunConfig(opts, filter.NewStore(cfg.FilterDir))
	if err != nil {
		return err
	}
	runCfg.DetectCharset = cfg.DetectCharset

	logger.Debugw("Resolved arguments",
		"input", runCfg.InputPath,
		"output", runCfg.OutputPath,
		"overwrite", opts.Overwrite,
		"delete_source", runCfg.DeleteSourceAfter,
		"filter", profile.Name,
		"filter_path", profile.Path,
		"entries", len(runCfg.Blacklist),
	)

	report, err := clean.Run(runCfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote to %s\n", report.OutputPath)
	fmt.Fprintf(out, "  Format: %s\n", report.Format)
	fmt.Fprintf(out, "  Nodes: %d\n", report.Nodes)
	fmt.Fprintf(out, "  Advertising removed: %d\n", len(report.Matches))
	if report.Language != "" {
		fmt.Fprintf(out, "  Language: %s\n", report.Language)
	}
	if report.SourceDeleted {
		fmt.Fprintf(out, "  Removed source: %s\n", report.InputPath)
	}

	return nil
}

// resolveRunConfig turns command line values into a RunConfig, checking the
// input exists, refusing to overwrite unless asked and loading the profile.
func resolveRunConfig(
	opts cleanOptions,
	store *filter.Store,
) (clean.RunConfig, *filter.Profile, error) {
	var runCfg clean.RunConfig

	input, err := filepath.Abs(opts.Input)
	if err != nil {
		return runCfg, nil, fmt.Errorf("resolve input path: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), "output"+filepath.Ext(input))
	}
	output, err = filepath.Abs(output)
	if err != nil {
		return runCfg, nil, fmt.Errorf("resolve output path: %w", err)
	}

	exists, err := fileio.Exists(input)
	if err != nil {
		return runCfg, nil, err
	}
	if !exists {
		return runCfg, nil, fmt.Errorf("input file does not exist: %s", input)
	}

	isDir, err := fileio.IsDir(input)
	if err != nil {
		return runCfg, nil, err
	}
	if isDir {
		return runCfg, nil, fmt.Errorf("input file was detected to be a directory: %s", input)
	}

	exists, err = fileio.Exists(output)
	if err != nil {
		return runCfg, nil, err
	}
	if exists && !opts.Overwrite {
		return runCfg, nil, fmt.Errorf(
			"output file already exists: %s (use -c to overwrite)",
			output,
		)
	}

	profile, err := store.Load(opts.Filter)
	if err != nil {
		return runCfg, nil, fmt.Errorf("unable to find the filter %q: %w", opts.Filter, err)
	}

	runCfg = clean.RunConfig{
		InputPath:         input,
		OutputPath:        output,
		Blacklist:         profile.Blacklist,
		DeleteSourceAfter: opts.DeleteSource,
	}
	return runCfg, profile, nil
}
