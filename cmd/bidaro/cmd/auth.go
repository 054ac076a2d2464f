// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Authenticate and persist the session credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		password := loginPassword
		if password == "" {
			password = os.Getenv("BIDARO_PASSWORD")
		}

		if err := application.Session.Login(ctx, args[0], password); err != nil {
			return err
		}

		user := application.Session.User()
		fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Email)
		fmt.Printf("Cart: %d line(s)\n", application.Cart.Len())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear the stored credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := application.Session.Logout(ctx); err != nil {
			return err
		}

		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		user := application.Session.User()
		if user == nil {
			fmt.Println("Session: anonymous")
			return nil
		}

		vip := ""
		if user.IsVIP {
			vip = " [VIP]"
		}
		fmt.Printf("Session: authenticated\n")
		fmt.Printf("User:    %s%s\n", user.FullName, vip)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("ID:      %s\n", user.UserID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (or set BIDARO_PASSWORD)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
