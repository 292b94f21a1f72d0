package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded validation runs",
	Long: `Lists validation runs recorded with 'validate --record'.
Runs are stored in <data_dir>/history.db under the project root.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent validation runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the report of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "maximum number of runs (0 for all)")
	historyShowCmd.Flags().Bool("json", false, "print the report as JSON")
	historyShowCmd.Flags().Bool("pretty", false, "bulleted violation lines")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}
	svc, closeFn, err := s.historyService()
	if err != nil {
		return err
	}
	defer closeFn()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := svc.List(commandContext(cmd), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	for _, r := range runs {
		status := "PASS"
		if r.Failed > 0 {
			status = "FAIL"
		}
		cmd.Printf("%s  %s  %-4s  ok=%d fail=%d skipped=%d  %s\n",
			r.ID, r.StartedAt.Local().Format(timeLayout), status,
			r.Passed, r.Failed, r.Skipped, relativeTo(s.root, r.ModelsDir))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}
	svc, closeFn, err := s.historyService()
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := svc.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", args[0], err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	pretty, _ := cmd.Flags().GetBool("pretty")
	cmd.Printf("Run %s at %s\n", report.ID, report.StartedAt.Local().Format(timeLayout))
	cmd.Printf("Models dir:  %s\n", report.ModelsDir)
	cmd.Printf("Schemas dir: %s\n\n", report.SchemasDir)
	newReportWriter(cmd.OutOrStdout(), pretty).report(report)
	return nil
}
