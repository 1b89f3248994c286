package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// datasetsCommand lists the datasets of a mart.
func (c *CLI) datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets [mart]",
		Short: "List datasets of a mart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, cfg, err := c.newClient()
			if err != nil {
				return err
			}
			mart, err := cfg.resolveMart(firstArg(args))
			if err != nil {
				return err
			}
			logger.Debug("Fetching datasets", "mart", mart)

			prog := newProgress(logger)
			datasets, err := client.Datasets(ctx, mart)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d datasets", len(datasets)))

			rows := make([][]string, 0, len(datasets))
			for _, d := range datasets {
				rows = append(rows, []string{d.Name, d.Description, d.Version, strconv.FormatBool(d.Visible)})
			}
			fmt.Println(renderTable([]string{"NAME", "DESCRIPTION", "VERSION", "VISIBLE"}, rows))
			return nil
		},
	}
}

// firstArg returns the first positional argument or "".
func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
