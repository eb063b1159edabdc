package cli

import (
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/model"
	"github.com/rcliao/yournote/internal/session"
	"github.com/rcliao/yournote/internal/store"
	"github.com/rcliao/yournote/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Summaries, analysis and study materials for a note",
}

func init() {
	summary := &cobra.Command{
		Use:   "summary <note>",
		Short: "Summarize a note",
		Args:  cobra.ExactArgs(1),
		Run:   runStudySummary,
	}
	summary.Flags().String("topic", "", "Focus the summary on a topic")

	topic := &cobra.Command{
		Use:   "topic <note> <topic>",
		Short: "Summarize what a note says about one topic",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			summarize(cmd, args[0], strings.Join(args[1:], " "))
		},
	}

	analyze := &cobra.Command{
		Use:   "analyze <note>",
		Short: "Find gaps and organization problems in a note",
		Args:  cobra.ExactArgs(1),
		Run:   runStudyAnalyze,
	}

	material := &cobra.Command{
		Use:   "material <note> <flashcards|quiz|mindmap|guide|diagram>",
		Short: "Generate study material from a note",
		Args:  cobra.ExactArgs(2),
		Run:   runStudyMaterial,
	}
	material.Flags().String("topic", "", "Focus the material on a topic")

	for _, c := range []*cobra.Command{summary, topic, analyze, material} {
		c.Flags().StringP("section", "s", "", "Only use the section whose heading matches")
		studyCmd.AddCommand(c)
	}
	RootCmd.AddCommand(studyCmd)
}

// studyContent resolves the note and narrows it to --section.
func studyContent(cmd *cobra.Command, sess *session.Session, ref string) (*model.Note, string) {
	n, err := store.ResolveNote(cmd.Context(), sess.Store, ref)
	if err != nil {
		exitErr("find note", err)
	}
	sess.SetCurrentNote(n.ID)

	section, _ := cmd.Flags().GetString("section")
	content, err := study.Scope(n.Content, section)
	if err != nil {
		exitErr("section", err)
	}
	return n, content
}

func runStudySummary(cmd *cobra.Command, args []string) {
	topic, _ := cmd.Flags().GetString("topic")
	summarize(cmd, args[0], topic)
}

func summarize(cmd *cobra.Command, ref, topic string) {
	gw := newGateway()
	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabNotes)

	n, content := studyContent(cmd, sess, ref)
	tools := study.NewTools(gw)

	if jsonOutput() {
		out, err := tools.Summary(cmd.Context(), content, topic)
		if err != nil {
			exitErr("summary", err)
		}
		printJSON(map[string]string{"note_id": n.ID, "topic": topic, "summary": out})
		return
	}

	streamOrExit("summary", tools.SummaryStream(cmd.Context(), content, topic, nil))
}

func runStudyAnalyze(cmd *cobra.Command, args []string) {
	gw := newGateway()
	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabNotes)

	n, content := studyContent(cmd, sess, args[0])
	tools := study.NewTools(gw)

	if jsonOutput() {
		out, err := tools.Analyze(cmd.Context(), content)
		if err != nil {
			exitErr("analyze", err)
		}
		printJSON(map[string]string{"note_id": n.ID, "analysis": out})
		return
	}

	streamOrExit("analyze", tools.AnalyzeStream(cmd.Context(), content, nil))
}

func runStudyMaterial(cmd *cobra.Command, args []string) {
	topic, _ := cmd.Flags().GetString("topic")
	m, err := study.ParseMaterial(args[1])
	if err != nil {
		exitErr("material", err)
	}

	gw := newGateway()
	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabNotes)

	n, content := studyContent(cmd, sess, args[0])
	out, err := study.NewTools(gw).Generate(cmd.Context(), m, content, topic)
	if err != nil {
		exitErr("generate "+string(m), err)
	}

	if jsonOutput() {
		printJSON(map[string]string{"note_id": n.ID, "material": string(m), "topic": topic, "content": out})
		return
	}
	fmt.Println(out)
}

func streamOrExit(msg string, chunks iter.Seq2[string, error]) {
	if err := drain(chunks, os.Stdout); err != nil {
		exitErr(msg, err)
	}
}
