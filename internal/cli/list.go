package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Run:   runList,
	}

	cmd.Flags().Bool("titles-only", false, "Only output id and title")

	noteCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	titlesOnly, _ := cmd.Flags().GetBool("titles-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	notes, err := s.ListNotes(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	printNotes(notes, titlesOnly)
}

func printNotes(notes []model.Note, titlesOnly bool) {
	if jsonOutput() {
		if notes == nil {
			notes = []model.Note{}
		}
		printJSON(notes)
		return
	}
	if len(notes) == 0 {
		fmt.Println("No notes yet. Create one with `yournote note add` or `yournote note seed`.")
		return
	}
	for _, n := range notes {
		if titlesOnly {
			fmt.Printf("%s\t%s\n", n.ID, n.Title)
			continue
		}
		fmt.Printf("%s\t%s\tlast edited %s\n", n.ID, n.Title, humanize.Time(n.LastEdited))
	}
}
