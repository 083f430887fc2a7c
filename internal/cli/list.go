package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/codegen"
	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/source"
)

var (
	listSource string
	listOrder  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the error constants a source would export",
	Long: `List every error constant that generate would write, one per line.

Examples:
  errnogen list                           # host table, sorted by name
  errnogen list --order code              # sorted by number
  errnogen list --source errno.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSource, "source", "s", "", "Source: host, table:<path>, sqlite:<path>[#name] (default: host)")
	listCmd.Flags().StringVar(&listOrder, "order", "", "Entry order: name, code, source (default: name)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	src, err := source.Parse(firstNonEmpty(listSource, cfg.Source))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	order, err := model.ParseOrder(firstNonEmpty(listOrder, cfg.Order))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	entries, _, err := codegen.Build(cmd.Context(), src, order)
	if err != nil {
		ExitWithError(err)
		return nil
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if entries == nil {
			entries = []model.Entry{}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Code)
	}
	return w.Flush()
}
