// Package cli implements the sub001 command line interface: design
// inspection, recalculation, schedule import, and file exports over
// designs saved by the configurator.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
	"github.com/rodor-repo/ThreeJS-sub001/internal/project"
	"github.com/rodor-repo/ThreeJS-sub001/internal/session"
)

// Version is overridden at build time via ldflags.
var Version = "dev"

// env carries the settings and logger resolved by the root command's
// persistent pre-run into every subcommand.
type env struct {
	cfg     model.AppConfig
	cfgPath string
	log     *zap.Logger
}

// Execute runs the sub001 CLI and returns an error if any command fails.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the command tree. Split out from Execute so tests
// can run commands with injected arguments.
func newRootCmd() *cobra.Command {
	var verbose bool
	e := &env{}

	root := &cobra.Command{
		Use:          "sub001",
		Short:        "Parametric cabinet designer",
		Long:         "sub001 inspects, recalculates, imports, and exports cabinet designs\nsaved by the configurator, without opening the editor.",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			e.log = log

			if e.cfgPath == "" {
				e.cfgPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(e.cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			e.cfg = cfg
			e.log.Debug("config loaded", zap.String("path", e.cfgPath))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&e.cfgPath, "config", "c", "", "config file (default ~/.sub001/config.json)")

	root.AddCommand(newInfoCmd(e))
	root.AddCommand(newRecalcCmd(e))
	root.AddCommand(newImportCmd(e))
	root.AddCommand(newExportCmd(e))

	return root
}

// newLogger builds the CLI's production logger. Output goes to stderr
// so command results on stdout stay clean.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// openSession loads a design into a headless session. Callers run
// Recalc themselves; the commands differ in what they do with the
// change count.
func (e *env) openSession(path string) (*session.Session, project.Design, error) {
	d, err := project.LoadDesign(path)
	if err != nil {
		return nil, project.Design{}, err
	}

	s := session.New(e.cfg, nil, e.log)
	s.RestoreDesign(d)
	return s, d, nil
}

// saveDesign writes a design back and records it in the recent list.
func (e *env) saveDesign(path string, d project.Design) error {
	if err := project.SaveDesign(path, d); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	e.cfg.AddRecentDesign(abs)
	if err := project.SaveAppConfig(e.cfgPath, e.cfg); err != nil {
		e.log.Warn("failed to update recent designs", zap.Error(err))
	}
	return nil
}

// designName derives a design name from its file path.
func designName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), project.DesignExt)
}
