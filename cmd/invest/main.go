package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/invest/pkg/invest/config"
	"github.com/komsit37/invest/pkg/invest/logger"
	"github.com/komsit37/invest/pkg/invest/rebalance"
	"github.com/komsit37/invest/pkg/invest/render"
	"github.com/komsit37/invest/pkg/invest/source"
	"github.com/komsit37/invest/pkg/invest/types"
)

// app carries what every subcommand needs once flags and config are parsed.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log zerolog.Logger
	out io.Writer

	configPath string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: out}

	rootCmd := &cobra.Command{
		Use:           "invest",
		Short:         "Portfolio projection, risk checks, stock screening and mock theses",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(a.v, a.configPath); err != nil {
				return err
			}
			cfg, err := config.FromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
			a.log.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("config loaded")
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (YAML)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Bool("log-pretty", true, "human-readable logs on stderr")
	pf.String("dataset", "", "stock dataset YAML file or directory (default: bundled)")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.pretty", pf.Lookup("log-pretty"))
	_ = a.v.BindPFlag("dataset", pf.Lookup("dataset"))

	rootCmd.AddCommand(
		newScreenCmd(a),
		newGrowCmd(a),
		newRiskCmd(a),
		newRebalanceCmd(a),
		newPortfolioCmd(a),
		newThesisCmd(a),
		newPresetsCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) dataset(arg []string) (source.Source, string) {
	path := a.cfg.Dataset
	if len(arg) > 0 {
		path = arg[0]
	}
	return source.For(path), path
}

// maxColWidth caps the configured column width to a third of the terminal.
func (a *app) maxColWidth() int {
	w := a.cfg.Render.MaxColWidth
	if tw := detectTerminalWidth(); tw > 0 && tw/3 < w {
		w = tw / 3
	}
	return w
}

func (a *app) renderOptions(color bool) render.RenderOptions {
	return render.RenderOptions{Color: color, PrettyJSON: true, MaxColWidth: a.maxColWidth()}
}

func loadAllocation(path string) ([]types.AllocationEntry, error) {
	if path == "" {
		return rebalance.DefaultAllocation(), nil
	}
	return source.LoadAllocation(path)
}

// checkFormat accepts table or json for report-style commands.
func checkFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "", "table":
		return "table", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want table or json)", types.ErrInvalidArgument, f)
}
