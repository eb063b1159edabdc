package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/importer"
	"github.com/rcliao/yournote/internal/model"
	"github.com/rcliao/yournote/internal/store"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Create, edit and browse study notes",
}

func init() {
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Long: "Create a note. Content comes from --content, --file (.md, .txt or .pdf) or stdin. " +
			"An empty title becomes \"" + model.DefaultNoteTitle + "\".",
		Run: runNoteAdd,
	}
	add.Flags().StringP("title", "t", "", "Note title")
	add.Flags().String("content", "", "Note content")
	add.Flags().String("file", "", "Read content from a file")

	edit := &cobra.Command{
		Use:   "edit <id-or-title>",
		Short: "Change a note's title or content",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteEdit,
	}
	edit.Flags().StringP("title", "t", "", "New title")
	edit.Flags().String("content", "", "New content")
	edit.Flags().Bool("stdin", false, "Read new content from stdin")
	edit.Flags().Bool("append", false, "Append to the existing content instead of replacing it")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Add the sample notes",
		Run:   runNoteSeed,
	}

	noteCmd.AddCommand(add, edit, seed)
	RootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case file != "":
		doc, err := importer.FromFile(cmd.Context(), file)
		if err != nil {
			exitErr("read file", err)
		}
		content = doc.Content
		if title == "" {
			title = doc.Title
		}
	case content == "" && !isTerminal(os.Stdin):
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		content = string(data)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.AddNote(cmd.Context(), title, content)
	if err != nil {
		exitErr("add note", err)
	}
	printNote(n, false)
}

func runNoteEdit(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := store.ResolveNote(cmd.Context(), s, args[0])
	if err != nil {
		exitErr("find note", err)
	}

	p := store.UpdateNoteParams{ID: n.ID}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		p.Title = &title
	}

	var content string
	var hasContent bool
	if fromStdin, _ := cmd.Flags().GetBool("stdin"); fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		content, hasContent = string(data), true
	} else if cmd.Flags().Changed("content") {
		content, _ = cmd.Flags().GetString("content")
		hasContent = true
	}
	if hasContent {
		if appendMode, _ := cmd.Flags().GetBool("append"); appendMode && n.Content != "" {
			content = strings.TrimRight(n.Content, "\n") + "\n" + content
		}
		p.Content = &content
	}

	if p.Title == nil && p.Content == nil {
		exitErr("edit", fmt.Errorf("nothing to change: pass --title, --content or --stdin"))
	}

	updated, err := s.UpdateNote(cmd.Context(), p)
	if err != nil {
		exitErr("edit note", err)
	}
	printNote(updated, false)
}

func runNoteSeed(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	added, err := store.Seed(cmd.Context(), s)
	if err != nil {
		exitErr("seed", err)
	}
	if jsonOutput() {
		fmt.Printf(`{"ok":true,"added":%d}`+"\n", added)
		return
	}
	fmt.Printf("Added %d sample notes.\n", added)
}

// printNote renders a note. Text output shows the content only when full is
// set.
func printNote(n *model.Note, full bool) {
	if jsonOutput() {
		printJSON(n)
		return
	}
	fmt.Printf("%s  %s\n", n.ID, n.Title)
	fmt.Printf("Last edited: %s\n", humanize.Time(n.LastEdited))
	if full {
		fmt.Println()
		fmt.Println(n.Content)
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return true
	}
	return info.Mode()&os.ModeCharDevice != 0
}
