package cli

import (
	"github.com/spf13/cobra"
)

// helpTopicsCmd is a parent command for help topics
var helpTopicsCmd = &cobra.Command{
	Use:   "help-topic",
	Short: "Extended help topics",
	Long:  `Extended help topics for errnogen. Use 'errnogen help-topic <topic>' to view.`,
}

var helpFormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Generated header format and customisation",
	Long: `Generated Header Format

LAYOUT
──────
  /* Generated by errnogen, do not edit */
  #define W(x) (space->wrap_int(context, (x)))
  add_def("E2BIG", W(7));
  add_def("EACCES", W(13));
  ...
  #undef W

One add_def line is written for every source name that starts with E.
Codes are decimal. Every line, including the trailer, ends in a newline.

The fragment is meant to be #included inside a module initializer where
space, context and add_def are in scope. W exists only between the
#define and the #undef.

ORDER
─────
  name    alphabetical (default)
  code    by number, ties broken by name
  source  whatever order the source yields

CUSTOMISATION (errnogen.yaml or ERRNOGEN_FORMAT_*)
───────────────────────────────────────────────────
  format:
    tool: errnogen                          # named in the comment
    macro: W                                # wrapper macro name
    wrap: space->wrap_int(context, (x))     # macro body
    register: add_def                       # function per line

Related Topics:
  errnogen help-topic sources   Where error tables come from`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(cmd.Long)
	},
}

var helpSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Error table sources",
	Long: `Error Table Sources

SPECS
─────
  host                     errno names of the platform errnogen runs on
  table:<path>             YAML or JSON table file
  <path>.yaml|.yml|.json   same as table:<path>
  sqlite:<path>[#name]     snapshot stored with 'errnogen snapshot save'
  <path>.db[#name]         same as sqlite:<path>[#name]

TABLE FILES
───────────
Short form, key order is kept:

  EPERM: 1
  ENOENT: 2

Full form, with provenance:

  goos: linux
  goarch: amd64
  entries:
    - name: EPERM
      code: 1

REPRODUCIBLE BUILDS
───────────────────
Host tables differ between platforms. Capture one once and build from it
everywhere:

  errnogen snapshot save linux-amd64
  errnogen generate --source sqlite:errno.db#linux-amd64

Related Topics:
  errnogen help-topic format    Generated header format`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(cmd.Long)
	},
}

func init() {
	helpTopicsCmd.AddCommand(helpFormatCmd)
	helpTopicsCmd.AddCommand(helpSourcesCmd)
	rootCmd.AddCommand(helpTopicsCmd)
}
