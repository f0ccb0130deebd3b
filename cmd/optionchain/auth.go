package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quicktime/optionchain/src/config"
	"github.com/quicktime/optionchain/src/session"
)

const defaultSessionFile = ".optionchain-session.json"

// setupSession builds the session manager against the configured auth
// service and wires its change stream into the file store, so every
// transition (sign-in, sign-out) is persisted for the next invocation.
func setupSession(cmd *cobra.Command) (*session.Manager, *session.FileStore) {
	cfg := loadConfig(cmd)

	if cfg.Auth.BaseURL == "" {
		log.Fatalf("auth base_url is not configured")
	}

	sessionFile, err := cmd.Flags().GetString("session-file")
	if err != nil {
		log.Fatalf("error getting session-file: %v", err)
	}

	manager := session.NewManager(session.NewHTTPAuthClient(cfg.Auth.BaseURL, config.AuthAPIKey()))
	store := session.NewFileStore(sessionFile)

	manager.OnChange(func(s *session.Session) {
		if err := store.Save(s); err != nil {
			log.Errorf("error persisting session: %v", err)
		}
	})

	return manager, store
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to the hosted auth service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager, _ := setupSession(cmd)
		defer manager.Teardown()

		password, err := cmd.Flags().GetString("password")
		if err != nil {
			log.Fatalf("error getting password: %v", err)
		}

		if password == "" {
			log.Fatalf("--password is required")
		}

		if err := manager.SignIn(context.Background(), args[0], password); err != nil {
			log.Fatalf("error signing in: %v", err)
		}

		current := manager.Current()
		log.Infof("signed in as %s, session expires %s", current.Email, current.ExpiresAt.Format(time.RFC3339))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored session and sign out",
	Run: func(cmd *cobra.Command, args []string) {
		manager, store := setupSession(cmd)
		defer manager.Teardown()

		stored, err := store.Load()
		if err != nil {
			log.Fatalf("error loading session: %v", err)
		}

		if stored == nil {
			log.Info("not signed in")
			return
		}

		manager.SetSession(stored)

		if err := manager.SignOut(context.Background()); err != nil {
			// the local session is cleared regardless
			log.Errorf("error revoking session: %v", err)
		}

		log.Info("signed out")
	},
}
