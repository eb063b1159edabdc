package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/exam"
	"github.com/rcliao/yournote/internal/model"
	"github.com/rcliao/yournote/internal/session"
	"github.com/rcliao/yournote/internal/store"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Generate, take and review exams",
}

func init() {
	generate := &cobra.Command{
		Use:   "generate <note>",
		Short: "Generate an exam from a note",
		Args:  cobra.ExactArgs(1),
		Run:   runExamGenerate,
	}
	generate.Flags().StringP("title", "t", "", "Exam title (default: \"Exam on <note title>\")")
	generate.Flags().IntP("count", "n", exam.DefaultQuestions, fmt.Sprintf("Number of questions (%d-%d)", exam.MinQuestions, exam.MaxQuestions))
	generate.Flags().String("type", string(model.MultipleChoice), "Question type: multiple_choice, true_false or short_answer")

	take := &cobra.Command{
		Use:   "take <exam-id>",
		Short: "Answer an exam and record the result",
		Long: "Answer each question on stdin: an option number or its text for multiple choice, " +
			"t/f for true/false, free text otherwise. --answers reads a JSON array of answers instead.",
		Args: cobra.ExactArgs(1),
		Run:  runExamTake,
	}
	take.Flags().String("answers", "", "JSON file holding an array of answers")

	list := &cobra.Command{
		Use:   "list",
		Short: "List exams",
		Run:   runExamList,
	}

	results := &cobra.Command{
		Use:   "results [exam-id]",
		Short: "Show recorded results, for one exam or all",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExamResults,
	}
	results.Flags().Bool("detail", false, "Show the per-question review")

	examCmd.AddCommand(generate, take, list, results)
	RootCmd.AddCommand(examCmd)
}

func runExamGenerate(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	count, _ := cmd.Flags().GetInt("count")
	typeStr, _ := cmd.Flags().GetString("type")

	kind, err := model.ParseQuestionKind(typeStr)
	if err != nil {
		exitErr("question type", err)
	}

	gw := newGateway()
	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabExams)

	n, err := store.ResolveNote(cmd.Context(), sess.Store, args[0])
	if err != nil {
		exitErr("find note", err)
	}
	sess.SetCurrentNote(n.ID)

	e, err := exam.NewGenerator(gw, logger).Generate(cmd.Context(), exam.GenerateParams{
		Note:  n,
		Title: title,
		Count: count,
		Type:  kind,
	})
	if err != nil {
		if jsonOutput() {
			var pe *exam.ParseError
			if errors.As(err, &pe) {
				printJSON(pe)
				os.Exit(1)
			}
		}
		exitErr("generate exam", err)
	}

	if err := sess.Store.SaveExam(cmd.Context(), e); err != nil {
		exitErr("save exam", err)
	}

	if jsonOutput() {
		printJSON(e)
		return
	}
	fmt.Printf("Exam \"%s\" generated successfully!\n", e.Title)
	fmt.Printf("ID: %s  (%d %s questions)\n", e.ID, len(e.Questions), e.QuestionType.Label())
	fmt.Printf("Take it with: yournote exam take %s\n", e.ID)
}

func runExamTake(cmd *cobra.Command, args []string) {
	answersFile, _ := cmd.Flags().GetString("answers")

	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabExams)

	e, err := sess.Store.GetExam(cmd.Context(), args[0])
	if err != nil {
		exitErr("get exam", err)
	}

	var answers []string
	if answersFile != "" {
		data, err := os.ReadFile(answersFile)
		if err != nil {
			exitErr("read answers", err)
		}
		if err := json.Unmarshal(data, &answers); err != nil {
			exitErr("parse answers", err)
		}
	} else {
		answers = askQuestions(e, os.Stdin, os.Stdout)
	}

	res := exam.Grade(e, answers)
	if err := sess.Store.AppendResult(cmd.Context(), res); err != nil {
		exitErr("save result", err)
	}

	if jsonOutput() {
		printJSON(res)
		return
	}
	printResult(res, true)
}

// askQuestions prompts for each answer on out and reads it from in. Stops
// asking at EOF; unanswered questions are graded as blank.
func askQuestions(e *model.Exam, in io.Reader, out io.Writer) []string {
	fmt.Fprintf(out, "%s\nBased on note: %s\n", e.Title, e.SourceNote)
	sc := bufio.NewScanner(in)
	answers := make([]string, 0, len(e.Questions))

	for i, q := range e.Questions {
		fmt.Fprintf(out, "\nQuestion %d: %s\n", i+1, q.Question)
		choices := exam.Widget(q)
		for j, c := range choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}
		fmt.Fprint(out, "Your answer: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		answers = append(answers, choose(q, choices, sc.Text()))
	}
	return answers
}

// choose maps a typed reply onto one of choices: an option number, or a
// t/f shorthand for true/false questions. Anything else is taken verbatim.
func choose(q model.Question, choices []string, reply string) string {
	if len(choices) == 0 {
		return reply
	}
	r := strings.TrimSpace(reply)
	if n, err := strconv.Atoi(r); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1]
	}
	if q.Kind == model.TrueFalse {
		switch strings.ToLower(r) {
		case "t", "true":
			return "True"
		case "f", "false":
			return "False"
		}
	}
	return r
}

func runExamList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exams, err := s.ListExams(cmd.Context())
	if err != nil {
		exitErr("list exams", err)
	}

	if jsonOutput() {
		if exams == nil {
			exams = []model.Exam{}
		}
		printJSON(exams)
		return
	}
	if len(exams) == 0 {
		fmt.Println("No exams yet. Generate one with `yournote exam generate <note>`.")
		return
	}
	for _, e := range exams {
		fmt.Printf("%s\t%s\t%d %s\tfrom %q\t%s\n", e.ID, e.Title, len(e.Questions),
			e.QuestionType.Label(), e.SourceNote, humanize.Time(e.DateCreated))
	}
}

func runExamResults(cmd *cobra.Command, args []string) {
	detail, _ := cmd.Flags().GetBool("detail")
	var examID string
	if len(args) > 0 {
		examID = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.ListResults(cmd.Context(), examID)
	if err != nil {
		exitErr("list results", err)
	}

	if jsonOutput() {
		if results == nil {
			results = []model.ExamResult{}
		}
		printJSON(results)
		return
	}
	if len(results) == 0 {
		fmt.Println("No results yet.")
		return
	}
	for i := range results {
		printResult(&results[i], detail)
	}
}

func printResult(r *model.ExamResult, detail bool) {
	fmt.Printf("%s  %s: %d/%d (%.1f%%)  %s\n", r.ID, r.ExamTitle, r.Score, r.TotalQuestions,
		r.Percentage, humanize.Time(r.DateTaken))
	if !detail {
		return
	}
	for i, a := range r.Results {
		mark := "✗"
		if a.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("  %s Question %d: %s\n", mark, i+1, a.Question)
		fmt.Printf("      Your answer: %s\n", a.UserAnswer)
		if !a.IsCorrect {
			fmt.Printf("      Correct answer: %s\n", a.CorrectAnswer)
		}
		if a.Explanation != "" {
			fmt.Printf("      Explanation: %s\n", a.Explanation)
		}
	}
}
