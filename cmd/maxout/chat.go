package maxout

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/model"
)

func newChatCmd(a *app) *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Talk to the trainer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reply, err := a.session.Trainer.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Aki: %s\n", reply.Text)
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.session.Trainer.History(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range history {
				who := "You"
				if m.Sender == model.SenderBot {
					who = "Aki"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", m.SentAt.Local().Format("15:04"), who, m.Text)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Trainer.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Chat cleared")
			return nil
		},
	}

	chatCmd.AddCommand(historyCmd, clearCmd)
	return chatCmd
}

func newMotivateCmd(a *app) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "motivate",
		Short: "Get a motivational message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.session.Trainer.Motivation(topic))
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "context", "general", "Context: general|missed_workout|achievement")
	return cmd
}
