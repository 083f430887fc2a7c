package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/source"
	"github.com/user/errnogen/internal/watch"
)

var (
	watchOutput   string
	watchSource   string
	watchOrder    string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the header whenever a table file changes",
	Long: `Generate once, then keep regenerating whenever the table file changes.
Only table sources can be watched. Stop with Ctrl-C.

Examples:
  errnogen watch --source errno.yaml
  errnogen watch --source table:errno.yaml -o include/tools/errno_def.h`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file (default: errno_def.h)")
	watchCmd.Flags().StringVarP(&watchSource, "source", "s", "", "Table source to watch: table:<path> or <path>.yaml")
	watchCmd.Flags().StringVar(&watchOrder, "order", "", "Entry order: name, code, source (default: name)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounceInterval, "Quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	src, err := source.Parse(firstNonEmpty(watchSource, cfg.Source))
	if err != nil {
		ExitWithError(err)
		return nil
	}
	table, ok := src.(*source.Table)
	if !ok {
		ExitWithError(fmt.Errorf("%w: watch needs a table file source, got %s", model.ErrInvalidSource, src.Name()))
		return nil
	}

	order, err := model.ParseOrder(firstNonEmpty(watchOrder, cfg.Order))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	output := firstNonEmpty(watchOutput, cfg.Output)
	ctx := cmd.Context()

	regenerate := func() error {
		result, err := generate(ctx, table, order, output, false)
		if err != nil {
			return err
		}
		if !IsQuiet() && !GetJSONOutput() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries to %s\n", green("Wrote"), result.Count, output)
		}
		return nil
	}

	// A broken table at startup is reported but does not stop the watch;
	// the next save may fix it.
	if err := regenerate(); err != nil {
		logger.Error("initial generation failed", "error", err)
	}

	w, err := watch.NewWatcher(table.Path(), regenerate, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetDebounceInterval(watchDebounce)

	return w.Run(ctx)
}
