package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tedil/go-biomart/pkg/biomart"
	"github.com/tedil/go-biomart/pkg/errors"
)

// Output formats accepted by --format.
const (
	formatTSV   = "tsv"
	formatTable = "table"
	formatJSON  = "json"
)

// queryOptions collects the flag values of the query command.
type queryOptions struct {
	mart       string
	dataset    string
	attributes []string
	filters    []string
	excludes   []string
	includes   []string
	format     string
	output     string
	requestID  string
	uniqueRows bool
}

// queryCommand runs a query against a dataset and prints the result.
func (c *CLI) queryCommand() *cobra.Command {
	opts := queryOptions{uniqueRows: true}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a query against a dataset",
		Long: `Run a query against a dataset and print the tab-separated result.

Filters take the form name=value or name=value1,value2. Boolean filters
are set with --exclude and --include instead of a value.`,
		Example: `  biomart query -m ENSEMBL_MART_ENSEMBL -d hsapiens_gene_ensembl \
    -a affy_hg_u133_plus_2 -a entrezgene_id \
    -f affy_hg_u133_plus_2=202763_s_at,209310_s_at,207500_at`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, cfg, err := c.newClient()
			if err != nil {
				return err
			}
			q, err := buildQuery(cfg, opts)
			if err != nil {
				return err
			}
			logger.Debug("Running query", "mart", q.Mart(), "dataset", q.Dataset(), "attributes", len(opts.attributes))

			spinner := newSpinner(ctx, "Querying "+q.Dataset())
			spinner.Start()
			resp, err := client.Query(ctx, q)
			if err != nil {
				spinner.StopWithError("Query failed")
				return err
			}
			spinner.Stop()

			out, err := formatResponse(resp, opts.format)
			if err != nil {
				return err
			}
			if opts.output != "" {
				if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", opts.output)
				}
				printSuccess("Result written")
				printFile(opts.output)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.mart, "mart", "m", "", "mart name (default from config)")
	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "dataset name (default from config)")
	cmd.Flags().StringArrayVarP(&opts.attributes, "attribute", "a", nil, "attribute to return (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.filters, "filter", "f", nil, "filter as name=value[,value...] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.excludes, "exclude", nil, "boolean filter to set to excluded (repeatable)")
	cmd.Flags().StringArrayVar(&opts.includes, "include", nil, "boolean filter to set to included (repeatable)")
	cmd.Flags().StringVar(&opts.format, "format", formatTSV, "output format: tsv, table or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().StringVar(&opts.requestID, "request-id", "", "request identifier (default random UUID)")
	cmd.Flags().BoolVar(&opts.uniqueRows, "unique-rows", true, "deduplicate result rows on the server")
	return cmd
}

// buildQuery turns flag values into a biomart.Query.
func buildQuery(cfg *Config, opts queryOptions) (*biomart.Query, error) {
	mart, err := cfg.resolveMart(opts.mart)
	if err != nil {
		return nil, err
	}
	dataset, err := cfg.resolveDataset(opts.dataset)
	if err != nil {
		return nil, err
	}
	if len(opts.attributes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidQuery, "at least one --attribute is required")
	}

	requestID := opts.requestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	b := biomart.NewQueryBuilder().
		Mart(mart).
		Dataset(dataset).
		Attributes(opts.attributes...).
		RequestID(requestID).
		UniqueRows(opts.uniqueRows)

	for _, f := range opts.filters {
		name, values, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		b = b.Filter(name, values...)
	}
	for _, name := range opts.excludes {
		b = b.ExcludeFilter(name)
	}
	for _, name := range opts.includes {
		b = b.IncludeFilter(name)
	}
	return b.Build(), nil
}

// parseFilter splits a name=value[,value...] flag into its parts.
func parseFilter(s string) (name string, values []string, err error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" || value == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidFilter, "filter %q must have the form name=value[,value...]", s)
	}
	return name, strings.Split(value, ","), nil
}

// formatResponse renders a query response in the requested output format.
func formatResponse(resp *biomart.Response, format string) (string, error) {
	switch format {
	case formatTSV:
		return resp.Raw(), nil
	case formatTable:
		header, err := resp.Header()
		if err != nil {
			return "", err
		}
		records, err := resp.All()
		if err != nil {
			return "", err
		}
		return renderTable(header, records) + "\n", nil
	case formatJSON:
		header, err := resp.Header()
		if err != nil {
			return "", err
		}
		records, err := resp.All()
		if err != nil {
			return "", err
		}
		if records == nil {
			records = [][]string{}
		}
		out, err := json.MarshalIndent(map[string]any{
			"header":  header,
			"records": records,
		}, "", "  ")
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "encoding result")
		}
		return string(out) + "\n", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (expected tsv, table or json)", format)
	}
}
