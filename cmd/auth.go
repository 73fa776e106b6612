package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errPasswordRequired = errors.New("password is required (use --password or pipe it on stdin)")

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the signed-in session",
	}

	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthRegisterCmd(app),
		newAuthLogoutCmd(app),
		newAuthProfileCmd(app),
		newAuthStatusCmd(app),
	)

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}

			result, err := app.session.Login(cmd.Context(), domain.Credentials{Username: username, Password: secret})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", result.User.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newAuthRegisterCmd(app *app) *cobra.Command {
	var registration domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd.InOrStdin(), registration.Password)
			if err != nil {
				return err
			}
			registration.Password = secret

			result, err := app.session.Register(cmd.Context(), registration)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s\n", result.User.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&registration.Username, "username", "", "Username")
	cmd.Flags().StringVar(&registration.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&registration.Password, "password", "", "Password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.session.Logout(cmd.Context())
			return nil
		},
	}
}

func newAuthProfileCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Fetch the signed-in user's profile from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.session.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, user)
			}

			info := catalog.SessionInfo{Authenticated: true, User: &user, Now: app.now()}
			if claims, err := app.session.Claims(cmd.Context()); err == nil {
				info.ExpiresAt = claims.Expiry()
			}
			rendered, err := catalog.Session(info)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAuthStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := catalog.SessionInfo{
				Authenticated: app.session.IsAuthenticated(cmd.Context()),
				Now:           app.now(),
			}
			if user, ok := app.session.User(); ok {
				info.User = &user
			}
			if info.Authenticated {
				claims, err := app.session.Claims(cmd.Context())
				if err != nil {
					app.log.WithError(err).Debug("session token carries no readable claims")
				} else {
					info.ExpiresAt = claims.Expiry()
				}
			}

			rendered, err := catalog.Session(info)
			return writeRendered(cmd, rendered, err)
		},
	}
}

func resolvePassword(stdin io.Reader, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errPasswordRequired
	}
	return password, nil
}
