package cli

import (
	"encoding/json"
	"fmt"

	platformerrors "github.com/jmgilman/go/errors"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1 // runtime failure or stale output
	ExitUsage   = 2 // invalid input or configuration
)

// JSONError represents a structured error response for --json output
type JSONError struct {
	Error          bool                   `json:"error"`
	Code           string                 `json:"code"`
	Classification string                 `json:"classification"`
	Message        string                 `json:"message"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// exitCodeFor maps an error's platform code to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	switch platformerrors.GetCode(err) {
	case platformerrors.CodeInvalidInput, platformerrors.CodeInvalidConfig:
		return ExitUsage
	}
	return ExitFailure
}

// ExitWithError outputs an error message and exits.
// If --json flag is set, outputs structured JSON error to stdout.
// Otherwise outputs plain text to stderr.
func ExitWithError(err error) {
	if GetJSONOutput() {
		resp := platformerrors.ToJSON(err)
		errResp := JSONError{
			Error:          true,
			Code:           resp.Code,
			Classification: resp.Classification,
			Message:        err.Error(),
			Details:        resp.Context,
		}
		data, _ := json.Marshal(errResp)
		fmt.Fprintln(rootCmd.OutOrStdout(), string(data))
	} else {
		fmt.Fprintln(rootCmd.ErrOrStderr(), red("Error:"), err)
	}
	Exit(exitCodeFor(err))
}

// invalidInput wraps err as a usage error.
func invalidInput(err error, message string) error {
	return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, message)
}
