package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/savioxavier/termlink"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/integrail/namegen-client/pkg/client"
	"github.com/integrail/namegen-client/pkg/ui"
	"github.com/integrail/namegen-client/pkg/util"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var copyNames, plain bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate names once and print them to stdout",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromViper(v)
			backend, err := client.NewClientFromConfig(cfg)
			if err != nil {
				return err
			}
			panel := client.NewPanel(backend, client.WithPrompter(client.PrompterFunc(func(title, text string) {
				fmt.Fprintln(cmd.ErrOrStderr(), title)
				fmt.Fprintln(cmd.ErrOrStderr(), text)
			})))
			return runGenerate(cmd, panel, cfg.Count, cfg.ApiBase, copyNames, plain)
		},
	}
	cmd.Flags().BoolVar(&copyNames, "copy", false, "also copy the names to the clipboard")
	cmd.Flags().BoolVar(&plain, "plain", false, "print names without numbering")
	return cmd
}

func runGenerate(cmd *cobra.Command, panel *client.Panel, count, apiBase string, copyNames, plain bool) error {
	var s *ui.Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		s = ui.NewSpinner(os.Stderr, fmt.Sprintf("Generating %s names from %s", count, termlink.ColorLink(apiBase, apiBase, "italic green")))
	}

	if err := panel.Generate(cmd.Context(), count); err != nil {
		s.Fail()
		return errors.New(panel.State().Error)
	}
	state := panel.State()
	s.Success(state.Meta)

	if len(state.Names) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), lo.Ternary(plain, strings.Join(state.Names, "\n"), util.NumberedList(state.Names)))
	}

	if copyNames && state.CopyEnabled {
		if err := panel.Copy(); err != nil {
			return errors.New(panel.State().Error)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), color.HiGreenString("Copied %d names", len(state.Names)))
	}
	return nil
}
