package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/hiredw/internal/sampledata"
	"github.com/okian/hiredw/pkg/logger"
)

const defaultGenerateRows = 1000

func (c *cli) newGenerateCmd() *cobra.Command {
	var (
		rows  int
		out   string
		seed  uint64
		messy float64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic candidate file with realistic defects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows <= 0 {
				return fmt.Errorf("--rows must be positive, got %d", rows)
			}
			if out == "" {
				out = c.cfg.CSVPath
			}
			g := sampledata.New(
				sampledata.WithSeed(seed),
				sampledata.WithMessyRate(messy),
				sampledata.WithDelimiter(c.cfg.DelimiterRune()),
			)
			if err := g.WriteFile(cmd.Context(), out, rows); err != nil {
				return err
			}
			c.log.Info(cmd.Context(), "sample data written", logger.String("path", out), logger.Int("rows", rows))
			fmt.Fprintln(c.stdout, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", defaultGenerateRows, "number of candidate rows")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: the configured csv path)")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().Float64Var(&messy, "messy", 0.1, "share of rows carrying a defect, 0 to 1")
	return cmd
}
