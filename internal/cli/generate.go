package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/codegen"
	"github.com/user/errnogen/internal/metrics"
	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/source"
)

var (
	generateOutput      string
	generateSource      string
	generateOrder       string
	generateCheck       bool
	generateMetricsFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the errno header fragment",
	Long: `Write one add_def line for every error constant whose name starts with E,
between the wrapper #define and #undef.

The output file is replaced atomically. Use -o - to print to stdout.

Examples:
  errnogen generate                               # host table -> errno_def.h
  errnogen generate -o include/tools/errno_def.h  # custom output path
  errnogen generate --source table:errno.yaml     # from a table file
  errnogen generate --source sqlite:errno.db#ci   # from a stored snapshot
  errnogen generate --order code                  # sort by number
  errnogen generate --check                       # fail if the file is stale`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file, - for stdout (default: errno_def.h)")
	generateCmd.Flags().StringVarP(&generateSource, "source", "s", "", "Source: host, table:<path>, sqlite:<path>[#name] (default: host)")
	generateCmd.Flags().StringVar(&generateOrder, "order", "", "Entry order: name, code, source (default: name)")
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "Do not write; exit 1 if the output is out of date")
	generateCmd.Flags().StringVar(&generateMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	rootCmd.AddCommand(generateCmd)
}

// generateSummary is the --json output of generate.
type generateSummary struct {
	Output  string `json:"output"`
	Source  string `json:"source"`
	Entries int    `json:"entries"`
	Skipped int    `json:"skipped"`
	SHA256  string `json:"sha256"`
	Checked bool   `json:"checked,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	src, err := source.Parse(firstNonEmpty(generateSource, cfg.Source))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	order, err := model.ParseOrder(firstNonEmpty(generateOrder, cfg.Order))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	output := firstNonEmpty(generateOutput, cfg.Output)
	result, err := generate(cmd.Context(), src, order, output, generateCheck)
	if err != nil {
		ExitWithError(err)
		return nil
	}

	if metricsFile := firstNonEmpty(generateMetricsFile, cfg.MetricsFile); metricsFile != "" && !generateCheck {
		m := metrics.NewGeneration(output)
		m.Observe(result, time.Now())
		if err := m.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Debug("wrote metrics", "file", metricsFile)
	}

	if output == "-" {
		return nil
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		data, _ := json.Marshal(generateSummary{
			Output:  output,
			Source:  result.Source,
			Entries: result.Count,
			Skipped: result.Skipped,
			SHA256:  result.Digest,
			Checked: generateCheck,
		})
		fmt.Fprintln(out, string(data))
	} else if !IsQuiet() {
		if generateCheck {
			fmt.Fprintf(out, "%s is %s (%d entries)\n", output, green("up to date"), result.Count)
		} else {
			fmt.Fprintf(out, "%s %d entries to %s\n", green("Wrote"), result.Count, output)
		}
	}

	return nil
}

// generate renders src and then writes, prints, or checks output.
func generate(ctx context.Context, src source.Source, order model.Order, output string, check bool) (*codegen.Result, error) {
	result, err := codegen.Generate(ctx, src, codegen.Options{
		Order:  order,
		Format: cfg.Format,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case check:
		if err := codegen.Check(output, result.Output); err != nil {
			return nil, err
		}
	case output == "-":
		if _, err := rootCmd.OutOrStdout().Write(result.Output); err != nil {
			return nil, err
		}
	default:
		if err := codegen.WriteFile(output, result.Output); err != nil {
			return nil, err
		}
		logger.Debug("generated", "output", output, "entries", result.Count, "source", result.Source)
	}

	return result, nil
}
