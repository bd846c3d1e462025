package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/erp/ausyexpo/internal/application/seeding"
)

func (c *console) seedCommand() *cobra.Command {
	var (
		count int
		rate  float64
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed <screen>",
		Short: "Create generated demo records",
		Long: `Create generated demo records through the screen's form, so every
record passes the same checks as a manual create.

Seed branches, departments and users first: other screens pick their
references from existing records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.screen(args[0])
			if err != nil {
				return err
			}
			opts := seeding.Options{
				Rate:   c.app.Seed.Rate,
				Burst:  c.app.Seed.Burst,
				Seed:   seed,
				Logger: c.app.Logger,
			}
			if cmd.Flags().Changed("rate") {
				opts.Rate = rate
			}
			res, err := seeding.New(opts).Seed(cmd.Context(), s, count)
			if err != nil {
				return err
			}
			if c.out.format != FormatTable {
				err = c.out.value(res)
			} else {
				c.out.line("Created %d %s (%d failed) in %s", res.Created, s.Label().Plural, res.Failed, res.Elapsed.Round(time.Millisecond))
			}
			if err == nil && res.Failed > 0 {
				return fmt.Errorf("%d of %d records were rejected", res.Failed, count)
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of records")
	cmd.Flags().Float64Var(&rate, "rate", 0, "create requests per second (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible data; 0 picks one")
	return cmd
}
