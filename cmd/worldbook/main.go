package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/config"
	"github.com/evanschultz/float-worldbook/pkg/logging"
	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/tui"
	"github.com/evanschultz/float-worldbook/pkg/world"
)

var (
	errNoWorld     = errors.New("no world file: pass one as an argument or set world in the config")
	errNotTerminal = errors.New("the browser needs a terminal; use refs, stats or validate for scripts")
)

// app carries the settings shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "worldbook [world-file]",
		Short: "Browse a world and see what links to each element",
		Long: `Worldbook opens a YAML or JSON world file in the terminal.

Every element shows its content, the elements it references, and a
"references" panel listing everything that links back to it, grouped by
relation. Select a reference to jump to it.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	pf.String("world", "", "world file to open when none is given as an argument")
	pf.String("log-file", "", "write logs to this file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	root.Flags().Bool("watch", false, "reload the world file when it changes")
	root.Flags().String("style", "auto", "markdown style: auto, dark, light, notty, pink, dracula")

	root.AddCommand(newRefsCmd(a), newStatsCmd(a), newValidateCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// worldPath picks the world file from args[i] or the config.
func (a *app) worldPath(args []string, i int) (string, error) {
	if len(args) > i && args[i] != "" {
		return args[i], nil
	}
	if a.cfg.World != "" {
		return a.cfg.World, nil
	}
	return "", errNoWorld
}

func (a *app) loadStore(path string) (models.World, *world.Store, error) {
	w, err := world.LoadFile(path)
	if err != nil {
		return models.World{}, nil, err
	}

	if issues := world.Validate(w.Elements); len(issues) > 0 {
		a.logger.Warn("world has validation issues",
			zap.String("path", path),
			zap.Int("issues", len(issues)))
	}
	a.logger.Info("world loaded",
		zap.String("path", path),
		zap.String("name", w.Name),
		zap.Int("elements", len(w.Elements)))

	return w, world.NewStore(a.logger, w.Elements...), nil
}

func (a *app) runUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	path, err := a.worldPath(args, 0)
	if err != nil {
		return err
	}
	w, store, err := a.loadStore(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if a.cfg.Watch {
		go func() {
			if err := world.Watch(ctx, path, store, a.logger); err != nil {
				a.logger.Error("watch stopped", zap.Error(err))
			}
		}()
	}

	model := tui.New(store, a.cfg.UI, a.logger)
	model.SetTitle(w.Name)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
