package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as JSON",
		Long:  "Export every note as a JSON array, to stdout or --out.",
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")

	noteCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			exitErr("create output", err)
		}
		defer f.Close()
		w = f
	}

	n, err := store.ExportNotes(cmd.Context(), s, w)
	if err != nil {
		exitErr("export", err)
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "exported %d notes to %s\n", n, out)
	}
}
