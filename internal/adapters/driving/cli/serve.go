package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve documentation over HTTP",
	Long: `Loads the configured directories, watches them for changes and serves
the documents as a JSON API with a server-sent event stream of changes.

Routes:
  GET /api/site
  GET /api/documents
  GET /api/document/{id}
  GET /api/search?q=...&limit=N
  GET /api/events`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := startRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	addr := serveAddr
	if addr == "" {
		addr = rt.Config().ServerAddr
	}

	server := httpapi.NewServer(rt.Documents(), rt.Search(), rt.Feed())
	return server.ListenAndServe(cmd.Context(), addr, func(a net.Addr) {
		cmd.Printf("Serving %s on http://%s\n", rt.Config().Title, a)
	})
}
