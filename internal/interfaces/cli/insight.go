package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

func (c *console) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show order totals and revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.Insight.OrderStatistics(cmd.Context())
			if err != nil {
				return err
			}
			if c.out.format != FormatTable {
				return c.out.value(stats)
			}
			return c.out.table([]string{"TOTAL", "PENDING", "DELIVERED", "REVENUE"}, [][]string{{
				itoa(stats.TotalOrders),
				itoa(stats.PendingOrders),
				itoa(stats.DeliveredOrders),
				stats.TotalRevenue.StringFixed(2),
			}})
		},
	}
}

func (c *console) reportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Read-only analytics reports",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the reports available to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := c.app.Insight.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			if c.out.format != FormatTable {
				return c.out.value(catalog)
			}
			rows := make([][]string, 0, len(catalog.Reports))
			for _, r := range catalog.Reports {
				rows = append(rows, []string{r, catalog.Descriptions[r]})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
			return c.out.table([]string{"REPORT", "DESCRIPTION"}, rows)
		},
	}, &cobra.Command{
		Use:   "show <type>",
		Short: "Show one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.app.Insight.Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.out.format != FormatTable {
				return c.out.value(doc)
			}
			c.out.line("%s\n", doc.Title())
			metrics := doc.Metrics()
			rows := make([][]string, 0, len(metrics))
			for _, m := range metrics {
				rows = append(rows, []string{m.Path, m.Value})
			}
			return c.out.table([]string{"METRIC", "VALUE"}, rows)
		},
	})
	return cmd
}
