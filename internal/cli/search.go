package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search notes by keyword",
		Long:  "Search note titles and content for matching text, case-insensitively.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	noteCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.SearchNotes(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}
	printNotes(results, false)
}
