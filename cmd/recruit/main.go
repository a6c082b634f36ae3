package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/colare/recruit/internal/config"
	"github.com/colare/recruit/internal/localstore"
	"github.com/colare/recruit/internal/logger"
	"github.com/colare/recruit/internal/preview"
	"github.com/colare/recruit/internal/tui"
	"github.com/colare/recruit/pkg/client"
	"github.com/colare/recruit/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// envToken overrides the stored token.
const envToken = "RECRUIT_TOKEN"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// session is what every command needs: settings, the local store and an
// API client carrying the current token.
type session struct {
	cfg    *config.Config
	store  *localstore.Store
	client *client.Client
	token  string
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.WithError(err).Warn("close local store")
		}
	}
	logger.Cleanup()
}

func openSession(ctx context.Context, configFile string) (*session, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Logger, cfg.Logger.Path(cfg.Storage.Dir)); err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	store, err := localstore.Open(ctx, cfg.Storage.DBPath())
	if err != nil {
		logger.Cleanup()
		return nil, err
	}
	s := &session{cfg: cfg, store: store}
	s.token = readToken(ctx, store)
	s.client = newClient(cfg.API, s.token)
	return s, nil
}

func newClient(cfg config.APIConfig, token string) *client.Client {
	c := client.New(cfg.BaseURL, token)
	c.SetTimeout(cfg.Timeout)
	c.SetRateLimit(cfg.RequestsPerSecond)
	return c
}

// readToken returns the auth token using precedence: env var > store > empty.
func readToken(ctx context.Context, store *localstore.Store) string {
	if tok := strings.TrimSpace(os.Getenv(envToken)); tok != "" {
		return tok
	}
	return store.Token(ctx)
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "recruit",
		Short:         "Colare recruiting dashboard in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), configFile)
			if err != nil {
				return err
			}
			defer s.Close()

			if s.token == "" {
				printGreeting(cmd.OutOrStdout())
				return nil
			}
			return runTUI(s, tui.Options{})
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile(), "config file")

	open := func(cmd *cobra.Command) (*session, error) {
		return openSession(cmd.Context(), configFile)
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newLoginCmd(open))
	root.AddCommand(newLogoutCmd(open))
	root.AddCommand(newWhoamiCmd(open))
	root.AddCommand(newUserCmd(open))
	root.AddCommand(newDashboardCmd(open))
	root.AddCommand(newNotificationsCmd(open))
	root.AddCommand(newPreviewCmd(open))
	root.AddCommand(newTestsCmd(open))
	return root
}

type opener func(cmd *cobra.Command) (*session, error)

func runTUI(s *session, opts tui.Options) error {
	opts.Client = s.client
	opts.Store = s.store
	opts.Local = s.store.LocalUser(context.Background())
	opts.WebURL = s.cfg.API.WebURL

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "recruit "+version)
		},
	}
}

func newLoginCmd(open opener) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("a token is required: recruit login --token <token>")
			}
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.SetToken(cmd.Context(), token); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			// Verify against the profile endpoint.
			c := newClient(s.cfg.API, token)
			profile, err := c.GetCompanyProfile(cmd.Context())
			if err != nil {
				_, _ = fmt.Fprintf(out, "Token saved but verification failed: %v\n", err)
				return nil
			}
			name := "your company"
			if profile.Company != nil && strings.TrimSpace(profile.Company.Name) != "" {
				name = strings.TrimSpace(profile.Company.Name)
			}
			_, _ = fmt.Fprintf(out, "Authenticated for %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API bearer token")
	return cmd
}

func newLogoutCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear your session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if s.store.Token(cmd.Context()) == "" && s.store.LocalUser(cmd.Context()) == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Already logged out.")
				return nil
			}
			if err := s.store.ClearSession(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current member and company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			user := client.ResolveUserContext(cmd.Context(), s.client, s.store.LocalUser(cmd.Context()))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nemail: %s\ncompany: %s\n", user.DisplayName, user.Email, user.CompanyName)
			return nil
		},
	}
}

func newUserCmd(open opener) *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "Locally stored member profile"}

	var email, first, last string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store the member's name and email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			u := domain.LocalUser{}
			if existing := s.store.LocalUser(cmd.Context()); existing != nil {
				u = *existing
			}
			if cmd.Flags().Changed("email") {
				u.Email = strings.TrimSpace(email)
			}
			if cmd.Flags().Changed("first") {
				u.FirstName = strings.TrimSpace(first)
			}
			if cmd.Flags().Changed("last") {
				u.LastName = strings.TrimSpace(last)
			}
			if err := s.store.SetLocalUser(cmd.Context(), u); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "saved")
			return nil
		},
	}
	set.Flags().StringVar(&email, "email", "", "email address")
	set.Flags().StringVar(&first, "first", "", "first name")
	set.Flags().StringVar(&last, "last", "", "last name")

	user.AddCommand(set)
	return user
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// explain adds a login hint to authentication failures.
func explain(err error) error {
	if client.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("%w (run: recruit login --token <token>)", err)
	}
	return err
}

func newDashboardCmd(open opener) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if asJSON {
				raw, err := s.client.GetRaw(cmd.Context(), "/api/companies/dashboard")
				if err != nil {
					return explain(err)
				}
				_, err = fmt.Fprintln(out, string(raw))
				return err
			}

			d, err := s.client.GetDashboard(cmd.Context())
			if err != nil {
				return explain(err)
			}
			_, _ = fmt.Fprintf(out, "active tests: %s\ncandidates: %s\npending review: %d\n",
				humanize.Comma(int64(d.Stats.TotalJobs)), humanize.Comma(int64(d.Stats.TotalApplications)), d.PendingReviews())
			for _, j := range d.RecentJobs {
				_, _ = fmt.Fprintf(out, "test\t%s\t%s\t%d\n", j.ID, j.Title, j.ApplicationCount())
			}
			for _, a := range d.RecentApplications {
				_, _ = fmt.Fprintf(out, "candidate\t%s\t%s\t%s\n", a.CandidateName(), a.JobTitle(), a.Status)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw data payload")
	return cmd
}

func newNotificationsCmd(open opener) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			feed, err := s.client.GetNotifications(cmd.Context())
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, feed)
			}
			_, _ = fmt.Fprintf(out, "%d unread\n", feed.UnreadCount)
			if len(feed.Notifications) == 0 {
				_, _ = fmt.Fprintln(out, "No notifications")
			}
			for _, n := range feed.Notifications {
				mark := " "
				if !n.IsRead {
					mark = "*"
				}
				when := "Just now"
				if !n.CreatedAt.IsZero() {
					when = humanize.Time(n.CreatedAt.Time)
				}
				_, _ = fmt.Fprintf(out, "%s %s\t%s\n", mark, n.Label(), when)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newPreviewCmd(open opener) *cobra.Command {
	var questionID string
	var plain bool
	cmd := &cobra.Command{
		Use:   "preview <testId>",
		Short: "Preview a test from local content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if !plain {
				return runTUI(s, tui.Options{TestID: args[0], QuestionID: questionID})
			}
			return printPreview(cmd.Context(), cmd.OutOrStdout(), s.store, args[0], questionID)
		},
	}
	cmd.Flags().StringVar(&questionID, "question", "", "open a question by id")
	cmd.Flags().BoolVar(&plain, "plain", false, "print instead of opening the TUI")
	return cmd
}

func printPreview(ctx context.Context, out io.Writer, store preview.Reader, testID, questionID string) error {
	r := preview.Lookup(ctx, store, testID, questionID)
	if questionID == "" {
		_, _ = fmt.Fprintf(out, "%s\nEstimated time: %d minutes\n", r.Role.TestTitle(), r.Duration())
		for i, sec := range r.Sections {
			_, _ = fmt.Fprintf(out, "%d. %s (%d questions)\n", i+1, sec.Title, len(sec.Questions))
		}
		return nil
	}
	if r.NotFound() {
		_, _ = fmt.Fprintln(out, preview.NotFoundMessage)
		return nil
	}
	q := r.Question
	_, _ = fmt.Fprintf(out, "%s\n%s · %s · %d mins\n", q.Title, q.Skill, q.Type, q.TimeMinutes)
	if q.Description != "" {
		_, _ = fmt.Fprintln(out, q.Description)
	}
	for i, opt := range q.Options {
		_, _ = fmt.Fprintf(out, "  %c) %s\n", 'a'+i, opt)
	}
	return nil
}

func newTestsCmd(open opener) *cobra.Command {
	tests := &cobra.Command{Use: "tests", Short: "Locally stored test content"}

	tests.AddCommand(&cobra.Command{
		Use:   "import <testId> <file>",
		Short: "Load sections from a .json, .jsonc or .yaml file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := preview.ReadFile(args[1])
			if err != nil {
				return err
			}
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := preview.Import(cmd.Context(), s.store, args[0], sections); err != nil {
				return err
			}
			total := len(domain.FlattenQuestions(sections))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sections (%d questions) for %s\n", len(sections), total, args[0])
			if dups := domain.DuplicateQuestionIDs(sections); len(dups) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: repeated question ids %s; --question opens the first of each\n", strings.Join(dups, ", "))
			}
			return nil
		},
	})

	tests.AddCommand(&cobra.Command{
		Use:   "clear <testId>",
		Short: "Remove a test's local sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := preview.Clear(cmd.Context(), s.store, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
			return nil
		},
	})

	tests.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tests with local sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ids, err := s.store.SectionTestIDs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				_, _ = fmt.Fprintln(out, "no local tests")
			}
			for _, id := range ids {
				sections, seeded := preview.Sections(cmd.Context(), s.store, id)
				if seeded {
					_, _ = fmt.Fprintf(out, "%s\tunreadable\n", id)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s\t%d sections\t%d questions\n", id, len(sections), len(domain.FlattenQuestions(sections)))
			}
			return nil
		},
	})
	return tests
}
