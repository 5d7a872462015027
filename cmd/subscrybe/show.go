package subscrybe

import (
	"github.com/spf13/cobra"

	"github.com/apizzacone/subscrybe-easy-life/internal/render"
)

var showCmd = newShowCommand()

func newShowCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the spend report to stdout",
		Long:  `Builds one report snapshot and prints its plain-text rendering to stdout instead of writing files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := buildSnapshot(cmd.Context(), opts)
			if err != nil {
				return err
			}

			artifact, err := renderFormat(cmd.Context(), render.FormatTypeText, snapshot)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(artifact.Payload)

			return err
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "Path to the subscription snapshot file (JSON)")
	cmd.Flags().StringVar(&opts.HistoryFile, "history", "", "Path to the monthly history ledger (YAML)")
	cmd.Flags().StringVar(&opts.PeriodStr, "period", "6months", "Trailing window (options: 3months, 6months, 12months)")
	cmd.Flags().StringVar(&opts.NowStr, "now", "", "Reference date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Number of upcoming payments to include (0 = default)")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}
