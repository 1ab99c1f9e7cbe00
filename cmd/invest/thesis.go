package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/komsit37/invest/pkg/invest/render"
	"github.com/komsit37/invest/pkg/invest/thesis"
)

func newThesisCmd(a *app) *cobra.Command {
	var (
		seed   int64
		delay  time.Duration
		format string
	)
	cmd := &cobra.Command{
		Use:   "thesis <ticker> <market>",
		Short: "Generate a mock investment thesis (market: us, uk, eu)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Thesis.Seed
			}
			g := thesis.NewGenerator(seed, delay)
			rec, err := g.Generate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.log.Debug().Str("id", rec.ID).Str("ticker", rec.Company.Ticker).Str("recommendation", string(rec.Recommendation)).Msg("thesis generated")
			if format == "json" {
				return render.WriteJSON(a.out, rec, true)
			}
			return render.Thesis(a.out, rec, a.renderOptions(true))
		},
	}
	fl := cmd.Flags()
	fl.Int64Var(&seed, "seed", 0, "random seed; 0 seeds from the clock")
	fl.DurationVar(&delay, "delay", 0, "simulated analysis delay")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}
