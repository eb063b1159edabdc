package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/sections"
	"github.com/rcliao/yournote/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id-or-title>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	cmd.Flags().StringP("section", "s", "", "Only show the section whose heading matches")
	cmd.Flags().Bool("outline", false, "List the note's section headings")

	noteCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	section, _ := cmd.Flags().GetString("section")
	outline, _ := cmd.Flags().GetBool("outline")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := store.ResolveNote(cmd.Context(), s, args[0])
	if err != nil {
		exitErr("get", err)
	}

	if outline {
		secs := sections.Split(n.Content)
		if jsonOutput() {
			printJSON(secs)
			return
		}
		for _, sec := range secs {
			fmt.Printf("%*s%s (lines %d-%d)\n", 2*max(sec.Level-1, 0), "", sec.Title, sec.StartLine, sec.EndLine)
		}
		return
	}

	if section != "" {
		sec, ok := sections.Find(n.Content, section)
		if !ok {
			exitErr("get", fmt.Errorf("section %q not found in %q", section, n.Title))
		}
		if jsonOutput() {
			printJSON(sec)
			return
		}
		fmt.Println(sec.Text)
		return
	}

	printNote(n, true)
}
