package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindframe/internal/likert"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage questionnaire sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.SessionRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions.")
			return nil
		}
		for _, s := range sessions {
			label := s.Label
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), label)
		}
		return nil
	},
}

var sessionsAddCmd = &cobra.Command{
	Use:   "add <responses.json>",
	Short: "Create a session from a JSON response file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open responses: %w", err)
		}
		defer f.Close()

		responses, err := likert.DecodeJSON(f)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		label, _ := cmd.Flags().GetString("label")
		sess, err := st.SessionRepo().Create(ctx, label)
		if err != nil {
			return err
		}
		if err := st.ResponseRepo().Append(ctx, sess.ID, responses); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created session %s with %d responses.\n",
			sess.ID, len(responses))
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session with its responses and reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.SessionRepo().Delete(cmd.Context(), args[0])
	},
}

func init() {
	sessionsAddCmd.Flags().String("label", "", "Human-readable session label")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsAddCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
