package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// martsCommand lists the marts a server exposes.
func (c *CLI) martsCommand() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "marts",
		Short: "List marts available on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, _, err := c.newClient()
			if err != nil {
				return err
			}
			logger.Debug("Fetching mart registry", "server", client.Server())

			prog := newProgress(logger)
			marts, err := client.Marts(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(marts))
			for _, m := range marts {
				if !showAll && !bool(m.Visible) {
					continue
				}
				rows = append(rows, []string{m.Name, m.DisplayName, m.Database, strconv.FormatBool(bool(m.Visible))})
			}
			prog.done(fmt.Sprintf("Fetched %d marts", len(marts)))

			fmt.Println(renderTable([]string{"NAME", "DISPLAY NAME", "DATABASE", "VISIBLE"}, rows))
			if !showAll && len(rows) < len(marts) {
				printDetail("%d hidden marts omitted (use --all to show them)", len(marts)-len(rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include hidden marts")
	return cmd
}
