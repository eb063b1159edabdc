package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/model"
	"github.com/rcliao/yournote/internal/session"
)

const chatGreeting = "Hi there! I'm your AI study assistant. How can I help you today?"

// chatSuggestions are the canned prompts offered by /suggest.
var chatSuggestions = []string{
	"Can you explain the concept of [topic]?",
	"What are effective study techniques for [subject]?",
	"How do I structure an essay about [topic]?",
	"Explain common mathematical symbols like pi, sigma, and theta.",
	"Show me the quadratic formula and explain how to use it.",
}

func init() {
	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Ask the study assistant",
		Long: "Ask a single question, or start an interactive chat when no prompt is given. " +
			"In the chat, /clear drops the history, /suggest lists example prompts and /exit quits.",
		Run: runChat,
	}

	cmd.Flags().Bool("no-stream", false, "Wait for the full answer instead of streaming it")
	cmd.Flags().StringP("system", "s", "", "System message (default: general assistant)")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	noStream, _ := cmd.Flags().GetBool("no-stream")
	system, _ := cmd.Flags().GetString("system")

	gw := newGateway()
	sess, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer sess.Close()
	sess.SetTab(session.TabChat)

	ask := func(ctx context.Context, prompt string) error {
		sess.AppendChat(model.RoleUser, prompt)
		reply, err := answer(ctx, gw, prompt, system, noStream, os.Stdout)
		if err != nil {
			return err
		}
		sess.AppendChat(model.RoleAssistant, reply)
		return nil
	}

	if len(args) > 0 {
		if err := ask(cmd.Context(), strings.Join(args, " ")); err != nil {
			exitErr("chat", err)
		}
		return
	}

	repl(cmd.Context(), sess, os.Stdin, ask)
}

// repl reads prompts line by line until EOF, /exit or cancellation.
func repl(ctx context.Context, sess *session.Session, in io.Reader, ask func(context.Context, string) error) {
	fmt.Println(chatGreeting)
	sc := bufio.NewScanner(in)
	for {
		fmt.Print("\n> ")
		if !sc.Scan() || ctx.Err() != nil {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return
		case "/clear":
			sess.ClearChat()
			fmt.Println("Chat cleared.")
			continue
		case "/suggest":
			for _, s := range chatSuggestions {
				fmt.Println("  " + s)
			}
			continue
		case "/history":
			for _, m := range sess.Chat() {
				fmt.Printf("[%s] %s\n", m.Role, m.Content)
			}
			continue
		}

		if err := ask(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

// answer writes the reply to prompt on w and returns the post-processed
// text.
func answer(ctx context.Context, gw *llm.Gateway, prompt, system string, noStream bool, w io.Writer) (string, error) {
	if noStream {
		reply, err := gw.Ask(ctx, prompt, system)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(w, reply)
		return reply, nil
	}

	var res llm.StreamResult
	if err := drain(gw.AskStream(ctx, prompt, system, &res), w); err != nil {
		return "", err
	}
	return res.Text, nil
}

// drain copies a chunk stream to w, ending with a newline.
func drain(chunks iter.Seq2[string, error], w io.Writer) error {
	for chunk, err := range chunks {
		if err != nil {
			fmt.Fprintln(w)
			return err
		}
		fmt.Fprint(w, chunk)
	}
	fmt.Fprintln(w)
	return nil
}
