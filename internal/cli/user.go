package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/auth"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Register accounts and check logins",
}

func init() {
	register := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run:   runUserRegister,
	}
	register.Flags().StringP("email", "e", "", "Email address (required)")
	register.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")
	register.MarkFlagRequired("email")

	login := &cobra.Command{
		Use:   "login <username>",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(1),
		Run:   runUserLogin,
	}
	login.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")

	userCmd.AddCommand(register, login)
	RootCmd.AddCommand(userCmd)
}

func openAuth() (*auth.Manager, func()) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	m, err := auth.NewManager(s.DB())
	if err != nil {
		s.Close()
		exitErr("open users", err)
	}
	return m, func() { s.Close() }
}

func readPassword(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		exitErr("read password", err)
	}
	return strings.TrimRight(line, "\r\n")
}

func runUserRegister(cmd *cobra.Command, args []string) {
	email, _ := cmd.Flags().GetString("email")
	password := readPassword(cmd)

	m, done := openAuth()
	defer done()

	ok, err := m.Register(cmd.Context(), args[0], password, email)
	if err != nil {
		exitErr("register", err)
	}
	if !ok {
		exitErr("register", fmt.Errorf("username %q already exists", args[0]))
	}
	fmt.Printf(`{"ok":true,"username":%q}`+"\n", args[0])
}

func runUserLogin(cmd *cobra.Command, args []string) {
	password := readPassword(cmd)

	m, done := openAuth()
	defer done()

	ok, err := m.ValidateLogin(cmd.Context(), args[0], password)
	if err != nil {
		exitErr("login", err)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "invalid username or password")
		os.Exit(1)
	}
	fmt.Printf(`{"ok":true,"username":%q}`+"\n", args[0])
}
