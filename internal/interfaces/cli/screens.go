package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erp/ausyexpo/internal/application/screen"
	"github.com/erp/ausyexpo/internal/domain/shared"
)

func (c *console) screenCommand(meta screen.Screen) *cobra.Command {
	key := meta.Key()
	cmd := &cobra.Command{
		Use:   key,
		Short: "Manage " + meta.Label().Plural,
	}
	cmd.AddCommand(
		c.listCommand(meta),
		c.getCommand(key),
		c.createCommand(key),
		c.updateCommand(key),
		c.deleteCommand(meta),
		c.fieldsCommand(key),
	)
	for _, a := range meta.Actions() {
		cmd.AddCommand(c.actionCommand(key, a))
	}
	if key == "orders" {
		cmd.AddCommand(c.statsCommand())
	}
	return cmd
}

func (c *console) listCommand(meta screen.Screen) *cobra.Command {
	var (
		search   string
		filters  []string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + meta.Label().Plural,
		Long:  listHelp(meta),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.screen(meta.Key())
			if err != nil {
				return err
			}
			q := screen.Query{Search: search, Page: page}
			if q.Filters, err = parsePairs(filters, "--filter"); err != nil {
				return err
			}
			if cmd.Flags().Changed("page-size") {
				q.PageSize = &pageSize
			}
			if err := s.Apply(q); err != nil {
				return err
			}
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			l, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			return c.printListing(l)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text search")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as key=value; repeatable")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size; 0 shows everything")
	return cmd
}

func listHelp(meta screen.Screen) string {
	var b strings.Builder
	fmt.Fprintf(&b, "List %s.\n\nSearch matches: %s\n", meta.Label().Plural, strings.Join(meta.SearchFields(), ", "))
	if filters := meta.Filters(); len(filters) > 0 {
		b.WriteString("\nFilters (ALL clears a filter):\n")
		for _, f := range filters {
			switch {
			case len(f.Options) > 0:
				fmt.Fprintf(&b, "  %s=%s\n", f.Key, strings.Join(f.Options, "|"))
			default:
				fmt.Fprintf(&b, "  %s=<%s>\n", f.Key, f.Kind)
			}
		}
	}
	return b.String()
}

func (c *console) printListing(l *screen.Listing) error {
	if c.out.format != FormatTable {
		return c.out.value(map[string]any{
			"page":  l.Page,
			"pages": l.Pages,
			"total": l.Total,
			"items": l.Records,
		})
	}
	if l.Total == 0 {
		c.out.line("No records found.")
		return nil
	}
	if err := c.out.table(l.Columns, l.Rows); err != nil {
		return err
	}
	footer := fmt.Sprintf("\nPage %d of %d (%d total)", l.Page, l.Pages, l.Total)
	var hints []string
	if l.HasPrev {
		hints = append(hints, "previous: --page "+strconv.Itoa(l.Page-1))
	}
	if l.HasNext {
		hints = append(hints, "next: --page "+strconv.Itoa(l.Page+1))
	}
	if len(hints) > 0 {
		footer += "; " + strings.Join(hints, ", ")
	}
	c.out.line("%s", footer)
	return nil
}

func (c *console) getCommand(key string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.screen(key)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := s.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.out.value(rec)
		},
	}
}

func (c *console) createCommand(key string) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from --set field=value pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.screen(key)
			if err != nil {
				return err
			}
			values, err := parsePairs(sets, "--set")
			if err != nil {
				return err
			}
			rec, err := s.Create(cmd.Context(), values)
			if err != nil {
				return err
			}
			return c.out.value(rec)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value; repeatable (see the fields command)")
	return cmd
}

func (c *console) updateCommand(key string) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a record; unset fields keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.screen(key)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			values, err := parsePairs(sets, "--set")
			if err != nil {
				return err
			}
			rec, err := s.Update(cmd.Context(), id, values)
			if err != nil {
				return err
			}
			return c.out.value(rec)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value; repeatable")
	return cmd
}

func (c *console) deleteCommand(meta screen.Screen) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.screen(meta.Key())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !c.confirm(s.Label().DeletePrompt()) {
				fmt.Fprintln(c.streams.Err, "Delete cancelled")
				return nil
			}
			return s.Delete(cmd.Context(), id)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks question on stderr and reads the answer from stdin.
func (c *console) confirm(question string) bool {
	fmt.Fprintf(c.streams.Err, "%s [y/N]: ", question)
	if c.streams.In == nil {
		return false
	}
	answer, _ := bufio.NewReader(c.streams.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *console) fieldsCommand(key string) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Describe the form fields accepted by create and update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.screen(key)
			if err != nil {
				return err
			}
			fields, err := s.Fields(cmd.Context())
			if err != nil {
				return err
			}
			if c.out.format != FormatTable {
				return c.out.value(fields)
			}
			rows := make([][]string, 0, len(fields))
			for _, f := range fields {
				values := strings.Join(f.Options, ", ")
				if f.Choices != nil {
					choices := make([]string, 0, len(f.Choices))
					for _, ch := range f.Choices {
						choices = append(choices, fmt.Sprintf("%d=%s", ch.ID, ch.Label))
					}
					values = strings.Join(choices, ", ")
				}
				rows = append(rows, []string{f.Name, f.Type, strconv.FormatBool(f.Required), values})
			}
			return c.out.table([]string{"FIELD", "TYPE", "REQUIRED", "VALUES"}, rows)
		},
	}
}

func (c *console) actionCommand(key string, a screen.ActionInfo) *cobra.Command {
	use, args := a.Name+" <id>", cobra.ExactArgs(1)
	help := a.Help
	if a.Options != nil {
		use, args = a.Name+" <id> <value>", cobra.ExactArgs(2)
		help += "\n\nValues: " + strings.Join(a.Options, ", ")
	}
	return &cobra.Command{
		Use:   use,
		Short: a.Help,
		Long:  help,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.screen(key)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var arg string
			if len(args) > 1 {
				arg = args[1]
			}
			// Loading first lets the success message reflect the current state.
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			rec, err := s.Act(cmd.Context(), a.Name, id, arg)
			if err != nil || rec == nil || c.out.format == FormatTable {
				return err
			}
			return c.out.value(rec)
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", shared.ErrInvalidInput, raw)
	}
	return id, nil
}

// parsePairs turns ["k=v", ...] into a map; later pairs win.
func parsePairs(pairs []string, flag string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %s expects key=value, got %q", shared.ErrInvalidInput, flag, p)
		}
		out[k] = v
	}
	return out, nil
}
