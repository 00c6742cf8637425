package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search harvested documents",
	Long: `Case-insensitive substring search over document titles and bodies.
Title matches rank above body matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	results, err := rt.Search().Search(cmd.Context(), query, domain.SearchOptions{Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		resp := httpapi.SearchResponseJSON{Query: query, Results: make([]httpapi.SearchResultJSON, 0, len(results))}
		for i := range results {
			link, _ := rt.Documents().SourceLink(cmd.Context(), results[i].Document.ID)
			resp.Results = append(resp.Results, httpapi.SearchResultJSON{
				Document:  documentJSON(&results[i].Document, link),
				Score:     results[i].Score,
				MatchType: string(results[i].MatchType),
			})
		}
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	p := newPrinter(cmd.OutOrStdout())
	p.printf("Results:\n\n")
	for i := range results {
		doc := &results[i].Document
		p.printf("  [%d] %s (%s, %d)\n", i+1, p.title(doc.Title), results[i].MatchType, results[i].Score)
		p.printf("      %s  %s\n\n", doc.ID, p.dim(location(doc)))
	}
	return nil
}
