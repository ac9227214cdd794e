package maxout

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session; state lives until exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.inShell {
				return errors.New("already in a shell session")
			}
			a.inShell = true
			defer func() { a.inShell = false }()

			out := cmd.OutOrStdout()
			prompt := a.cfg.Session.Prompt
			fmt.Fprintln(out, "maxout interactive session. Type 'help' for commands, 'exit' to quit.")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, prompt)
				if !scanner.Scan() {
					fmt.Fprintln(out)
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}
				words, err := shlex.Split(line)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "parse %q: %s\n", line, err)
					continue
				}

				lineCmd := newRootCmd(a)
				lineCmd.SetArgs(words)
				lineCmd.SetIn(cmd.InOrStdin())
				lineCmd.SetOut(out)
				lineCmd.SetErr(cmd.ErrOrStderr())
				if err := lineCmd.ExecuteContext(cmd.Context()); err != nil {
					log.WithField("line", line).Debugf("shell command failed: %s", err)
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", err)
				}
				if err := cmd.Context().Err(); err != nil {
					return nil
				}
			}
			return scanner.Err()
		},
	}
}
