package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/source"
	"github.com/user/errnogen/internal/storage"
)

var (
	snapshotDB     string
	snapshotSource string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored error table snapshots",
	Long: `Capture error tables into a SQLite database so another host can generate
byte-identical output later with --source sqlite:<db>#<name>.

Examples:
  errnogen snapshot save linux-amd64            # capture the host table
  errnogen snapshot save ci --source errno.yaml # capture a table file
  errnogen snapshot list
  errnogen snapshot show linux-amd64            # print as YAML
  errnogen snapshot rm linux-amd64`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Capture a source into the snapshot database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a stored snapshot as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRm,
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotDB, "db", "", "Snapshot database (default: errno.db)")
	snapshotSaveCmd.Flags().StringVarP(&snapshotSource, "source", "s", "", "Source to capture (default: host)")

	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotRmCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// snapshotName returns the name argument or the default snapshot name.
func snapshotName(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return source.DefaultSnapshot
}

// openSnapshots opens the configured snapshot database.
func openSnapshots() (*storage.SnapshotStore, error) {
	return storage.OpenSnapshotStore(firstNonEmpty(snapshotDB, cfg.SnapshotDB))
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	name := snapshotName(args)

	src, err := source.Parse(firstNonEmpty(snapshotSource, cfg.Source))
	if err != nil {
		ExitWithError(err)
		return nil
	}

	table, err := src.Load(cmd.Context())
	if err != nil {
		ExitWithError(err)
		return nil
	}

	store, err := openSnapshots()
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), name, table); err != nil {
		return err
	}
	logger.Debug("saved snapshot", "name", name, "source", table.Source, "db", store.Path())

	out := cmd.OutOrStdout()
	if jsonOutput {
		data, _ := json.Marshal(map[string]interface{}{
			"name":    name,
			"source":  table.Source,
			"entries": len(table.Entries),
		})
		fmt.Fprintln(out, string(data))
	} else if !IsQuiet() {
		fmt.Fprintf(out, "%s snapshot '%s' (%d entries from %s)\n", green("Saved"), name, len(table.Entries), table.Source)
	}
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	store, err := openSnapshots()
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	infos, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if infos == nil {
			infos = []storage.SnapshotInfo{}
		}
		data, _ := json.Marshal(infos)
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(infos) == 0 {
		if !IsQuiet() {
			fmt.Fprintln(out, "No snapshots")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENTRIES\tPLATFORM\tSOURCE\tCREATED")
	for _, info := range infos {
		platform := "-"
		if info.GOOS != "" {
			platform = info.GOOS + "/" + info.GOARCH
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", info.Name, info.Entries, platform, info.Source, info.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	name := snapshotName(args)

	store, err := openSnapshots()
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	table, err := store.Load(cmd.Context(), name)
	if err != nil {
		ExitWithError(err)
		return nil
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if table.Entries == nil {
			table.Entries = []model.Entry{}
		}
		data, _ := json.Marshal(table)
		fmt.Fprintln(out, string(data))
		return nil
	}
	return source.EncodeTable(out, table)
}

func runSnapshotRm(cmd *cobra.Command, args []string) error {
	store, err := openSnapshots()
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		ExitWithError(err)
		return nil
	}

	if !IsQuiet() && !GetJSONOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s snapshot '%s'\n", green("Deleted"), args[0])
	}
	return nil
}
