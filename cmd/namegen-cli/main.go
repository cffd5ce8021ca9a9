package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/integrail/namegen-client/internal/build"
	"github.com/integrail/namegen-client/pkg/client"
	"github.com/integrail/namegen-client/pkg/logging"
)

const (
	flagAPIBase  = "api-base"
	flagTimeout  = "timeout"
	flagHeader   = "header"
	flagCount    = "count"
	flagLogFile  = "log-file"
	flagLogLevel = "log-level"
	flagConfig   = "config"
)

// the backend listens on 8080 unless told otherwise
const defaultAPIBase = "http://127.0.0.1:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.HiRedString(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:     "namegen",
		Version: build.Version,
		Short:   "namegen is a terminal client for the name generator",
		Long:    "Request generated names from a namegen backend, browse them and copy them to the clipboard",
		Args:    cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfigFile(v); err != nil {
				return err
			}
			closer, err := initLogging(v, cmd == cmd.Root())
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("interactive mode needs a terminal, use `namegen generate` instead")
			}
			return startPanel(cmd.Context(), configFromViper(v))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagAPIBase, "a", defaultAPIBase, "namegen backend base URL")
	flags.StringP(flagTimeout, "t", "", "max time to wait for a response (duration, e.g. 30s), default: no limit")
	flags.StringSliceP(flagHeader, "H", []string{}, "extra request header as Name=Value (repeatable)")
	flags.StringP(flagCount, "c", "10", "number of names to generate")
	flags.String(flagLogFile, "", "write logs to this file (interactive default: "+logging.DefaultLogFile()+", otherwise stderr)")
	flags.String(flagLogLevel, "", "log level (debug, info, warn, error), default: info interactive, warn otherwise")
	flags.String(flagConfig, "", "YAML config file using the flag names as keys")

	lo.Must0(v.BindPFlags(flags))
	v.SetEnvPrefix("namegen")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	lo.Must0(v.BindEnv(flagAPIBase, "NAMEGEN_API_BASE", "API_BASE"))

	rootCmd.AddCommand(newGenerateCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString(flagConfig)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %q", path)
	}
	return nil
}

// initLogging keeps the interactive screen clean by logging to a file there.
func initLogging(v *viper.Viper, interactive bool) (io.Closer, error) {
	levelName := lo.Ternary(v.GetString(flagLogLevel) != "", v.GetString(flagLogLevel), lo.Ternary(interactive, "info", "warn"))
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level")
	}

	path := v.GetString(flagLogFile)
	if path == "" && interactive {
		path = logging.DefaultLogFile()
	}
	if path == "" {
		logging.InitLogger(level, os.Stderr)
		return nil, nil
	}
	f, err := logging.OpenLogFile(path)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(level, f)
	return f, nil
}

func configFromViper(v *viper.Viper) client.Config {
	return client.Config{
		ApiBase: v.GetString(flagAPIBase),
		Timeout: v.GetString(flagTimeout),
		Headers: v.GetStringSlice(flagHeader),
		Count:   v.GetString(flagCount),
	}
}

func startPanel(ctx context.Context, cfg client.Config) error {
	model, err := client.NewPanelModel(ctx, cfg)
	if err != nil {
		return err
	}
	logging.GetLogger().WithField("apiBase", cfg.ApiBase).Info("starting panel")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrapf(err, "failed to run panel")
	}
	return nil
}
