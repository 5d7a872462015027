package subscrybe

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/apizzacone/subscrybe-easy-life/internal/log"
)

var (
	BuildVersion  = `(missing)`
	BuildShortSHA = `(missing)`

	RootCmd = &cobra.Command{
		Use:               "subscrybe",
		Short:             "Subscription spend reporter",
		Long:              `Tracks recurring-payment subscriptions and exports spend reports as PDF, XLSX or plain text.`,
		PersistentPreRunE: setupLogger,
		Version:           fmt.Sprintf("%s (%s)", BuildVersion, BuildShortSHA),
	}
)

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.SetOut(os.Stderr)

	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	RootCmd.AddCommand(reportCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(versionCmd)
}

func Main(ctx context.Context, args []string, output io.Writer) error {
	RootCmd.SetOut(output)
	RootCmd.SetArgs(args[1:])

	return RootCmd.ExecuteContext(ctx)
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := log.New(
		log.WithWriter(os.Stderr),
		log.WithVerbose(verbose),
		log.WithBuildInfo(BuildVersion, BuildShortSHA),
	)

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	return nil
}
