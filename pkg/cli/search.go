package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/computerscienceiscool/license-search/pkg/search"
)

func newSearchCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the license texts once and print the first match",
		Long: `Runs the same search as the web page. The first license containing the
query is printed with the match wrapped in [ and ]. Without a query the
searchable licenses are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			res, err := a.Search(query)
			if err != nil {
				return apperrors.SanitizeError(err)
			}
			printResult(cmd.OutOrStdout(), res, a.Catalog())
			return nil
		},
	}
}

func printResult(w io.Writer, res search.Result, catalog *license.Catalog) {
	switch res.Kind {
	case search.NoQuery:
		fmt.Fprintln(w, "You can search through:")
		for _, name := range catalog.Names() {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	case search.Found:
		text := res.Highlight.Text("[", "]")
		fmt.Fprintf(w, "=== LICENSE: %s ===\n", res.Label)
		fmt.Fprint(w, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprint(w, "\n")
		}
		fmt.Fprint(w, "=== END LICENSE ===\n")
	default:
		fmt.Fprintln(w, "Error: could not find anything.")
	}
}
