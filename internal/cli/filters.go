package cli

import (
	"fmt"

	"github.com/mgpai22/subclean/internal/filter"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters [name]",
	Short: "List filter profiles or print the entries of one",
	Long: `Without arguments, list the filter profiles found in the user filter
directory (SUBCLEAN_FILTER_DIR) and the ones built into subclean. A user
profile with the same name as a built-in one takes precedence.

With a name, print the lower-cased entries of that profile, one per line.

Examples:
  subclean filters
  subclean filters main`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command, args []string) error {
	store := filter.NewStore(cfg.FilterDir)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		profile, err := store.Load(args[0])
		if err != nil {
			return fmt.Errorf("unable to find the filter %q: %w", args[0], err)
		}
		logger.Debugw("Loaded filter profile",
			"name", profile.Name,
			"path", profile.Path,
			"entries", len(profile.Blacklist),
		)
		for _, entry := range profile.Blacklist {
			fmt.Fprintln(out, entry)
		}
		return nil
	}

	infos, err := store.List()
	if err != nil {
		return err
	}

	for _, info := range infos {
		switch {
		case info.Shadowed:
			fmt.Fprintf(out, "%-16s built-in (overridden)\n", info.Name)
		case info.Builtin:
			marker := ""
			if info.Name == cfg.DefaultFilter {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%-16s built-in%s\n", info.Name, marker)
		default:
			marker := ""
			if info.Name == cfg.DefaultFilter {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%-16s %s%s\n", info.Name, info.Path, marker)
		}
	}
	return nil
}
