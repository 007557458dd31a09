package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCookiesCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookies",
		Short: "Inspect or clear the stored cookie jar",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored cookies by host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g, "")
			if err != nil {
				return err
			}
			all := s.jar.AllCookies()
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No cookies stored.")
			}
			for _, h := range s.jar.Hosts() {
				for _, c := range all[h] {
					fmt.Fprintf(out, "%s\t%s\t%s=%s\n", h, c.Path, c.Name, c.Value)
				}
			}
			return s.close(cmd.ErrOrStderr())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every stored cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g, "")
			if err != nil {
				return err
			}
			s.jar.Clear()
			if err := s.close(cmd.ErrOrStderr()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cookie jar cleared.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <host> <name>",
		Short: "Remove one cookie",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g, "")
			if err != nil {
				return err
			}
			s.jar.RemoveCookie(args[0], args[1])
			return s.close(cmd.ErrOrStderr())
		},
	})

	return cmd
}
