package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"holoscope/internal/domain/entity"
)

func newLoginCmd(s *session) *cobra.Command {
	var role, username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and record the login",
		Example: `  holoscope login --role admin -u admin -p password
  holoscope login -u alice -p secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := entity.ParseRole(role)
			if err != nil {
				return err
			}
			user, err := s.c.UserService.Authenticate(cmd.Context(), r, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(entity.RoleUser), "Role: admin or user")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage lab user accounts",
	}

	var password string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := s.c.UserService.Add(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User '%s' added\n", user.Username)
			return nil
		},
	}
	add.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = add.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := s.c.UserService.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintln(cmd.OutOrStdout(), u.Username)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.c.UserService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User '%s' deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func newHistoryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the login history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := s.c.UserService.History(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "(no history)")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\n", e.Username, e.At.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func newOrgsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Manage organizations",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := s.c.OrgService.Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added\n", name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orgs, err := s.c.OrgService.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(orgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(none)")
				return nil
			}
			for _, o := range orgs {
				fmt.Fprintln(cmd.OutOrStdout(), o)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
