package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/number"
)

var demoCmd = &cobra.Command{
	Use:   "demo [a] [b]",
	Short: "Add two Number values and print the sum",
	Long: `Construct Number(a) and Number(b), add them and print the result.
With no arguments a=1 and b=2, so the output is 3.

Examples:
  errnogen demo         # 3
  errnogen demo 40 2    # 42`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	operands := []int{1, 2}
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			ExitWithError(invalidInput(err, fmt.Sprintf("operand %q is not an integer", arg)))
			return nil
		}
		operands[i] = v
	}

	a, b := number.New(operands[0]), number.New(operands[1])
	sum := a.Add(b)

	out := cmd.OutOrStdout()
	if jsonOutput {
		data, _ := json.Marshal(map[string]int{
			"a":   a.Value(),
			"b":   b.Value(),
			"sum": sum.Value(),
		})
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, sum)
	return nil
}
