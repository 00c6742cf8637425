package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for documentation changes",
	Long: `Loads the configured directories, then prints a line each time the
document set changes until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	rt, err := startRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	ctx := cmd.Context()
	id, changes := rt.Feed().Subscribe(ctx)
	defer rt.Feed().Unsubscribe(id)

	p := newPrinter(cmd.OutOrStdout())
	p.printf("Watching %s (Ctrl+C to stop)\n", p.title(rt.Config().Title))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-changes:
			if !ok {
				return nil
			}
			if msg.Kind != domain.MessageFileChanged {
				continue
			}
			docs, err := rt.Documents().List(ctx)
			if err != nil {
				return err
			}
			at := time.Unix(msg.Timestamp, 0).UTC().Format(time.RFC3339)
			p.printf("%s changed, %d documents\n", p.dim(at), len(docs))
		}
	}
}
