package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// filtersCommand lists the filters a dataset accepts.
func (c *CLI) filtersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filters [mart] [dataset]",
		Short: "List filters of a dataset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, cfg, err := c.newClient()
			if err != nil {
				return err
			}
			mart, dataset, err := resolveSchemaArgs(cfg, args)
			if err != nil {
				return err
			}
			logger.Debug("Fetching filters", "mart", mart, "dataset", dataset)

			prog := newProgress(logger)
			filters, err := client.Filters(ctx, mart, dataset)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d filters", len(filters)))

			rows := make([][]string, 0, len(filters))
			for _, f := range filters {
				rows = append(rows, []string{f.Name, f.Description, f.Type, summarizeOptions(f.Options)})
			}
			fmt.Println(renderTable([]string{"NAME", "DESCRIPTION", "TYPE", "OPTIONS"}, rows))
			return nil
		},
	}
}

// attributesCommand lists the attributes a dataset can return.
func (c *CLI) attributesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attributes [mart] [dataset]",
		Short: "List attributes of a dataset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, cfg, err := c.newClient()
			if err != nil {
				return err
			}
			mart, dataset, err := resolveSchemaArgs(cfg, args)
			if err != nil {
				return err
			}
			logger.Debug("Fetching attributes", "mart", mart, "dataset", dataset)

			prog := newProgress(logger)
			attributes, err := client.Attributes(ctx, mart, dataset)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d attributes", len(attributes)))

			rows := make([][]string, 0, len(attributes))
			for _, a := range attributes {
				rows = append(rows, []string{a.Name, a.Description, a.Page})
			}
			fmt.Println(renderTable([]string{"NAME", "DESCRIPTION", "PAGE"}, rows))
			return nil
		},
	}
}

// resolveSchemaArgs maps positional [mart] [dataset] arguments onto the
// config defaults. A single argument is taken as the dataset when a
// default mart is configured.
func resolveSchemaArgs(cfg *Config, args []string) (mart, dataset string, err error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 1:
		if cfg.DefaultMart != "" {
			dataset, err = cfg.resolveDataset(args[0])
			return cfg.DefaultMart, dataset, err
		}
		mart, err = cfg.resolveMart(args[0])
		if err != nil {
			return "", "", err
		}
		dataset, err = cfg.resolveDataset("")
		return mart, dataset, err
	default:
		mart, err = cfg.resolveMart("")
		if err != nil {
			return "", "", err
		}
		dataset, err = cfg.resolveDataset("")
		return mart, dataset, err
	}
}

// summarizeOptions joins filter options, truncating long lists for display.
func summarizeOptions(options []string) string {
	const maxShown = 6
	if len(options) == 0 {
		return ""
	}
	if len(options) <= maxShown {
		return strings.Join(options, ", ")
	}
	return fmt.Sprintf("%s, … (%d total)", strings.Join(options[:maxShown], ", "), len(options))
}
