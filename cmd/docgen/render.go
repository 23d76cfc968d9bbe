package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/services"
)

func newRenderCmd(e *env) *cobra.Command {
	var (
		req services.GenerateRequest
		out string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a document to a file",
		Long: "Render a template for a reservation and save it to disk. " +
			"--set overrides mapped values; without --reservation only --set values are used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			doc, p, err := stack.Documents.Generate(cmd.Context(), req)
			if err != nil {
				var missing *services.MissingVariablesError
				if errors.As(err, &missing) {
					return fmt.Errorf("%s: missing %v", missing.Template, missing.Missing)
				}
				return err
			}
			path := out
			if path == "" {
				path = doc.Filename
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, doc.Filename)
			}
			if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", path, len(doc.Data))
			if len(p.Blank) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "blank optional variables: %v\n", p.Blank)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.TemplateCode, "template", "", "template code (required)")
	cmd.Flags().UintVar(&req.ReservationID, "reservation", 0, "reservation ID")
	cmd.Flags().StringToStringVar(&req.Values, "set", nil, "variable values, key=value")
	cmd.Flags().StringVar(&req.Filename, "filename", "", "file name override")
	cmd.Flags().BoolVar(&req.ForceBody, "force-body", false, "render the template body instead of the designed layout")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (default: generated file name)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

// newSessionCmd prints a session cookie value for a user, for API clients
// and local testing.
func newSessionCmd(e *env) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Print a session cookie for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.open(cmd.Context()); err != nil {
				return err
			}
			var user models.User
			err := e.conn.WithContext(cmd.Context()).Where("email = ?", email).First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no user with email %q", email)
			}
			if err != nil {
				return err
			}
			auth.SetSecret(e.cfg.App.SessionSecret)
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", auth.CookieName, auth.Token(user.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
