// Package main provides the CLI entrypoint for folio.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/folio/internal/config"
	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/content"
	"github.com/verte-zerg/folio/internal/logging"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/outbox"
	"github.com/verte-zerg/folio/internal/relay"
	"github.com/verte-zerg/folio/internal/store"
	"github.com/verte-zerg/folio/internal/theme"
	"github.com/verte-zerg/folio/internal/tui"
)

const defaultPrintWidth = 80

var (
	rootContent string
	rootWatch   bool
	rootPrint   bool
	rootDebug   bool

	sendName    string
	sendEmail   string
	sendMessage string

	outboxLast   int
	outboxStatus string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Terminal portfolio",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runRootCmd,
	}

	rootCmd.Flags().StringVar(&rootContent, "content", "", "portfolio content file (.toml, .yaml)")
	rootCmd.Flags().BoolVar(&rootWatch, "watch", false, "reload the content file when it changes")
	rootCmd.Flags().BoolVar(&rootPrint, "print", false, "print the page instead of starting the TUI")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "write debug logs")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newOutboxCmd())

	return rootCmd
}

// app holds what every command shares once config is resolved.
type app struct {
	cfg    config.FileConfig
	logger *zap.Logger
	store  *store.Store
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "debug", &rootDebug, fileCfg.Log.Debug)

	logger, err := logging.New(config.DefaultLogPath(), rootDebug)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = zap.NewNop()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return &app{cfg: fileCfg, logger: logger, store: st}, nil
}

func (a *app) close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
	_ = a.logger.Sync()
}

func (a *app) newFlow() *contact.Flow {
	rc := relay.Config{
		Endpoint:   config.StringValue(a.cfg.Relay.Endpoint),
		ServiceID:  config.StringValue(a.cfg.Relay.ServiceID),
		TemplateID: config.StringValue(a.cfg.Relay.TemplateID),
		PublicKey:  config.StringValue(a.cfg.Relay.PublicKey),
		PrivateKey: config.StringValue(a.cfg.Relay.PrivateKey),
	}
	var opts contact.Options
	if d := a.cfg.Contact.Timeout; d != nil {
		opts.Timeout = d.Duration
	}
	if d := a.cfg.Contact.ResetDelay; d != nil {
		opts.ResetDelay = d.Duration
	}
	return contact.NewFlow(relay.New(rc, a.logger), opts)
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	applyStringConfig(cmd, "content", &rootContent, a.cfg.Content.Path)
	applyBoolConfig(cmd, "watch", &rootWatch, a.cfg.Content.Watch)
	if rootWatch && rootContent == "" {
		return fmt.Errorf("--watch requires --content")
	}

	portfolio, err := loadPortfolio(rootContent)
	if err != nil {
		return err
	}

	ctx := context.Background()
	th := theme.Load(ctx, a.store, a.logger)

	stdoutFd := int(os.Stdout.Fd())
	if rootPrint || !term.IsTerminal(stdoutFd) {
		width := defaultPrintWidth
		if w, _, err := term.GetSize(stdoutFd); err == nil && w > 0 {
			width = w
		}
		_, err := io.WriteString(cmd.OutOrStdout(), tui.RenderStatic(portfolio, width, th.IsDark(), time.Now()))
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	flow := a.newFlow()
	defer flow.Close()

	m := tui.NewModel(tui.Options{
		Portfolio: portfolio,
		Theme:     th,
		Flow:      flow,
		Journal:   a.store,
		Logger:    a.logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if rootWatch {
		go func() {
			err := content.Watch(watchCtx, rootContent, func(p model.Portfolio, err error) {
				program.Send(tui.ContentMsg{Portfolio: p, Err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("content watch stopped", zap.Error(err))
			}
		}()
	}

	a.logger.Info("starting", zap.String("content", rootContent), zap.Bool("watch", rootWatch))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadPortfolio(path string) (model.Portfolio, error) {
	if path == "" {
		return content.Default(), nil
	}
	p, err := content.Load(path)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to load content: %w", err)
	}
	return p, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	th := theme.Load(ctx, a.store, a.logger)
	if len(args) == 1 {
		if err := changeTheme(ctx, th, args[0]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), th.Name()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func changeTheme(ctx context.Context, th *theme.Store, arg string) error {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "toggle" {
		th.Toggle(ctx)
		return nil
	}
	dark, ok := theme.ParseName(arg)
	if !ok {
		return fmt.Errorf("unknown theme %q (use dark, light or toggle)", arg)
	}
	th.Set(ctx, dark)
	return nil
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a contact message",
		Args:  cobra.NoArgs,
		RunE:  runSendCmd,
	}
	cmd.Flags().StringVar(&sendName, "name", "", "your name")
	cmd.Flags().StringVar(&sendEmail, "email", "", "your email address")
	cmd.Flags().StringVar(&sendMessage, "message", "", "message text")
	return cmd
}

func runSendCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	msg := contact.Message{Name: sendName, Email: sendEmail, Body: sendMessage}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptMissing(&msg); err != nil {
			return err
		}
	}

	flow := a.newFlow()
	defer flow.Close()
	rec, err := deliver(context.Background(), flow, a.store, msg, time.Now())
	if err != nil {
		return err
	}
	a.logger.Info("contact message journaled", zap.String("id", rec.ID), zap.String("status", string(rec.Status)))
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Message sent. Thanks, I'll get back to you soon."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// deliver runs msg through the contact flow once and journals the outcome.
// Rejected submissions are not journaled since nothing was sent.
func deliver(ctx context.Context, flow *contact.Flow, j outbox.Journal, msg contact.Message, now time.Time) (model.MessageRecord, error) {
	flow.SetField(contact.FieldName, msg.Name)
	flow.SetField(contact.FieldEmail, msg.Email)
	flow.SetField(contact.FieldMessage, msg.Body)

	attempt, ok := flow.Submit()
	if !ok {
		return model.MessageRecord{}, errors.New(flow.State().ErrorText())
	}
	res := flow.Deliver(attempt)
	rec, jerr := outbox.Record(ctx, j, attempt.Message, res.Err, now)
	if jerr != nil {
		logErrf("%v\n", jerr)
	}
	flow.Complete(res)
	if res.Err != nil {
		return rec, fmt.Errorf("failed to send message: %w", res.Err)
	}
	return rec, nil
}

func promptMissing(msg *contact.Message) error {
	fields := []struct {
		label    string
		target   *string
		validate promptui.ValidateFunc
	}{
		{label: "Name", target: &msg.Name, validate: requireText},
		{label: "Email", target: &msg.Email, validate: validateEmail},
		{label: "Message", target: &msg.Body, validate: requireText},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.target) != "" {
			continue
		}
		prompt := promptui.Prompt{Label: f.label, Validate: f.validate}
		value, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", strings.ToLower(f.label), err)
		}
		*f.target = value
	}
	return nil
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateEmail(s string) error {
	if err := requireText(s); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return errors.New("not an email address")
	}
	return nil
}

func newOutboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Show sent contact messages",
		Args:  cobra.NoArgs,
		RunE:  runOutboxCmd,
	}
	cmd.Flags().IntVar(&outboxLast, "last", 0, "limit to last N messages")
	cmd.Flags().StringVar(&outboxStatus, "status", "", "status filter (sent, failed, timeout)")
	return cmd
}

func runOutboxCmd(cmd *cobra.Command, _ []string) error {
	filter, err := outboxFilter(outboxLast, outboxStatus)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := outbox.BuildReport(context.Background(), a.store, filter)
	if err != nil {
		return err
	}
	if err := outbox.Render(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func outboxFilter(last int, status string) (model.MessageFilter, error) {
	if last < 0 {
		return model.MessageFilter{}, fmt.Errorf("--last must be >= 0")
	}
	filter := model.MessageFilter{Last: last}
	switch s := model.MessageStatus(strings.ToLower(strings.TrimSpace(status))); s {
	case "":
	case model.StatusSent, model.StatusFailed, model.StatusTimeout:
		filter.Status = s
	default:
		return model.MessageFilter{}, fmt.Errorf("unknown --status %q (use sent, failed or timeout)", status)
	}
	return filter, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# folio configuration
# Uncomment a value to enable it. CLI flags override config values.
# Relay credentials can also come from %s, %s,
# %s, %s and %s.

[relay]
# endpoint = %q
# service-id = ""
# template-id = ""
# public-key = ""
# private-key = ""       # Optional access token

[contact]
# timeout = %q          # Give up on the relay after this long
# reset-delay = %q      # Clear the confirmation after this long

[content]
# path = ""              # Portfolio content file (.toml, .yaml)
# watch = false          # Reload the content file when it changes

[log]
# debug = false          # Write debug logs to %s
`,
		config.EnvRelayEndpoint,
		config.EnvRelayServiceID,
		config.EnvRelayTemplateID,
		config.EnvRelayPublicKey,
		config.EnvRelayPrivateKey,
		relay.DefaultEndpoint,
		contact.DefaultTimeout.String(),
		contact.DefaultResetDelay.String(),
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
