package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/cppedit"
	"github.com/iw2rmb/cppedit/config"
	"github.com/iw2rmb/cppedit/editor"
	"github.com/iw2rmb/cppedit/internal/log"
	"github.com/iw2rmb/cppedit/smartedit"
)

type rootOptions struct {
	configPath string
	debug      bool

	cfg      config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "cppedit [FILE]",
		Short:        "A terminal editor for C++ sources",
		Long:         `cppedit opens a file in a terminal editor with C++ syntax highlighting and smart indentation.`,
		Version:      cppedit.VersionString(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.closeLog != nil {
				opts.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(opts.cfg, path)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ./"+config.LocalPath+" or ~/.config/cppedit/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")

	cmd.AddCommand(newHighlightCmd(opts), newConfigCmd())
	return cmd
}

func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if log.Enabled(o.debug) {
		closeLog, err := log.Init(cfg.Log.Path)
		if err != nil {
			return err
		}
		o.closeLog = closeLog
		log.Info(log.CatConfig, "debug log enabled", "config", cfg.Source)
	}
	return nil
}

// editorConfig maps the loaded configuration onto the editor widget.
func editorConfig(cfg config.Config, text string) (editor.Config, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return editor.Config{}, err
	}
	eng, err := cfg.Engine()
	if err != nil {
		return editor.Config{}, fmt.Errorf("highlight rules: %w", err)
	}
	return editor.Config{
		Text:         text,
		ShowLineNums: cfg.ShowLineNumbers,
		Style:        editor.DefaultStyle(),
		Registry:     reg,
		Gutter:       cfg.Gutter,
		Engine:       eng,
		SmartEdit:    smartedit.New(smartedit.WithTabWidth(cfg.TabWidth)),
		TabWidth:     cfg.TabWidth,
	}, nil
}

// readSource returns the file contents, or "" when path does not exist yet.
func readSource(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func runEditor(cfg config.Config, path string) error {
	text, err := readSource(path)
	if err != nil {
		return err
	}
	ecfg, err := editorConfig(cfg, text)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newApp(ecfg, path), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
