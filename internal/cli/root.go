// Package cli implements the contactbook command line and interactive menu.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/contactbook/internal/auth"
	"github.com/mmynk/contactbook/internal/config"
	"github.com/mmynk/contactbook/pkg/logging"
)

// ErrLoginFailed is returned after the operator has been told their
// credentials were rejected.
var ErrLoginFailed = errors.New("login failed")

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalFlags struct {
	configPath string
	envFile    string
	overrides  config.FlagOverrides
}

// deps is shared by all subcommands; cfg is filled in by withConfig.
type deps struct {
	in      io.Reader
	out     io.Writer
	flags   globalFlags
	cfg     config.Config
	cleanup func() error
}

// Execute runs the root command against the process stdio and returns the exit code.
func Execute(build BuildInfo) int {
	cmd := NewRootCommand(os.Stdin, os.Stdout, build)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, ErrLoginFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func NewRootCommand(in io.Reader, out io.Writer, build BuildInfo) *cobra.Command {
	d := &deps{in: in, out: out}

	cmd := &cobra.Command{
		Use:           "contactbook",
		Short:         "Keep track of people, their addresses and phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: d.withConfig(func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), d)
		}),
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&d.flags.configPath, "config", "", "Path to config.toml (default $XDG_CONFIG_HOME/contactbook/config.toml)")
	pf.StringVar(&d.flags.envFile, "env-file", ".env", "Read environment overrides from this file if it exists")
	pf.StringVar(&d.flags.overrides.DBPath, "db", "", "Path to the SQLite database file")
	pf.BoolVar(&d.flags.overrides.Debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&d.flags.overrides.Accessible, "accessible", false, "Use plain line prompts instead of interactive widgets")

	cmd.AddCommand(newVersionCommand(out, build))
	cmd.AddCommand(newUserAddCommand(d))
	return cmd
}

// withConfig loads configuration and logging before run and releases the log
// file afterwards, whether or not run succeeds.
func (d *deps) withConfig(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := d.setup(); err != nil {
			return err
		}
		defer d.teardown()
		return run(cmd, args)
	}
}

func (d *deps) setup() error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: d.flags.configPath,
		EnvFile:    d.flags.envFile,
		Flags:      d.flags.overrides,
	})
	if err != nil {
		return err
	}
	d.cfg = cfg

	cleanup, err := logging.Setup(logging.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	d.cleanup = cleanup
	return nil
}

func (d *deps) teardown() error {
	if d.cleanup == nil {
		return nil
	}
	err := d.cleanup()
	d.cleanup = nil
	return err
}

func runInteractive(ctx context.Context, d *deps) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := openRuntime(d.cfg, d.in, d.out)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := NewApp(rt.contacts, rt.auth, rt.prompt, d.out)

	session, err := app.Login(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			fmt.Fprintln(d.out, "Invalid credentials")
			return ErrLoginFailed
		}
		return err
	}

	return app.Run(ctx, session)
}
