package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/importer"
	"github.com/rcliao/yournote/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [pattern...]",
		Short: "Import notes from JSON, markdown or PDF",
		Long: "With no arguments, read a JSON array produced by export from stdin. " +
			"Otherwise each argument is a file or a glob (\"notes/**/*.md\"); .md, .txt and .pdf " +
			"files each become one note.",
		Run: runImport,
	}

	noteCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if len(args) == 0 {
		res, err := store.ImportNotes(cmd.Context(), s, os.Stdin)
		if err != nil {
			exitErr("import", err)
		}
		fmt.Printf(`{"ok":true,"imported":%d,"skipped":%d}`+"\n", res.Imported, res.Skipped)
		return
	}

	var paths []string
	for _, pattern := range args {
		matches, err := importer.Glob(pattern)
		if err != nil {
			exitErr("expand pattern", err)
		}
		if len(matches) == 0 && !strings.ContainsAny(pattern, "*?[{") {
			matches = []string{pattern}
		}
		paths = append(paths, matches...)
	}

	imported, failed := 0, 0
	for _, p := range paths {
		doc, err := importer.FromFile(cmd.Context(), p)
		if err != nil {
			logger.Warn("skip file", "path", p, "error", err)
			failed++
			continue
		}
		n, err := s.AddNote(cmd.Context(), doc.Title, doc.Content)
		if err != nil {
			exitErr("add note", err)
		}
		logger.Debug("imported", "path", p, "id", n.ID)
		imported++
	}

	fmt.Printf(`{"ok":true,"imported":%d,"failed":%d}`+"\n", imported, failed)
}
