package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

var (
	listFile string
	listJSON bool
	getJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List harvested documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Print a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	listCmd.Flags().StringVarP(&listFile, "file", "f", "", "only list documents from this source file")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the document as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	ctx := cmd.Context()
	var docs []domain.Document
	if listFile != "" {
		docs, err = rt.Documents().ListBySource(ctx, listFile)
	} else {
		docs, err = rt.Documents().List(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listJSON {
		out := make([]httpapi.DocumentJSON, 0, len(docs))
		for i := range docs {
			link, _ := rt.Documents().SourceLink(ctx, docs[i].ID)
			out = append(out, documentJSON(&docs[i], link))
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	p := newPrinter(cmd.OutOrStdout())
	for i := range docs {
		p.printf("%-32s %s\n", docs[i].ID, p.title(docs[i].Title))
		p.printf("%-32s %s\n", "", p.dim(location(&docs[i])))
	}
	p.printf("\n%d documents\n", len(docs))
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	ctx := cmd.Context()
	id := domain.DocumentID(args[0])

	doc, err := rt.Documents().Get(ctx, id)
	if err != nil {
		return err
	}
	link, err := rt.Documents().SourceLink(ctx, id)
	if err != nil {
		return err
	}

	if getJSON {
		return writeJSON(cmd.OutOrStdout(), documentJSON(doc, link))
	}

	p := newPrinter(cmd.OutOrStdout())
	p.printf("%s\n", p.title(doc.Title))
	p.printf("%s\n", p.dim(location(doc)))
	if link != "" {
		p.printf("%s\n", p.dim(link))
	}
	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.printf("%s: %s\n", k, doc.Metadata[k])
	}
	p.printf("\n%s\n", doc.Content)
	return nil
}
