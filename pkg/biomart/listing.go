package biomart

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Dataset describes one queryable table within a mart.
type Dataset struct {
	Name        string // Dataset identifier (e.g., "hsapiens_gene_ensembl")
	Description string // Display description (e.g., "Human genes (GRCh38.p14)")
	Type        string // Dataset kind, "TableSet" for all current installations
	Visible     bool   // Whether the dataset is shown in UIs
	Version     string // Assembly or release version (may be empty)
}

// Filter describes one constraint field usable to restrict query results.
type Filter struct {
	Name        string   // Filter identifier (e.g., "chromosome_name")
	Description string   // Display description
	Type        string   // Filter kind as reported by the service (e.g., "list", "text", may be empty)
	Options     []string // Allowed values (nil when the filter is free-form)
}

// Attribute describes one selectable output column of a dataset.
type Attribute struct {
	Name        string // Attribute identifier (e.g., "entrezgene_id")
	Description string // Display description
	Page        string // Attribute page grouping (may be empty)
}

// Datasets lists the datasets of the named mart.
//
// Returns [ErrNetwork] on transport failure, [ErrService] for non-success
// statuses and [ErrParse] when the listing cannot be decoded.
func (c *Client) Datasets(ctx context.Context, mart string) ([]Dataset, error) {
	rows, err := c.listing(ctx, url.Values{"type": {"datasets"}, "mart": {mart}})
	if err != nil {
		return nil, err
	}

	datasets := make([]Dataset, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: datasets row has %d columns, want at least 3", ErrParse, len(row))
		}
		d := Dataset{
			Type:        row[0],
			Name:        row[1],
			Description: row[2],
		}
		if len(row) > 3 {
			d.Visible = row[3] == "1"
		}
		if len(row) > 4 {
			d.Version = row[4]
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// Filters lists the filters of a dataset. The mart name is sent along for
// servers hosting the dataset under several marts.
func (c *Client) Filters(ctx context.Context, mart, dataset string) ([]Filter, error) {
	rows, err := c.listing(ctx, url.Values{"type": {"filters"}, "dataset": {dataset}, "mart": {mart}})
	if err != nil {
		return nil, err
	}

	filters := make([]Filter, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: filters row has %d columns, want at least 2", ErrParse, len(row))
		}
		f := Filter{
			Name:        row[0],
			Description: row[1],
		}
		if len(row) > 2 {
			f.Options = splitOptions(row[2])
		}
		if len(row) > 5 {
			f.Type = row[5]
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Attributes lists the attributes of a dataset. The mart name is sent along
// for servers hosting the dataset under several marts.
func (c *Client) Attributes(ctx context.Context, mart, dataset string) ([]Attribute, error) {
	rows, err := c.listing(ctx, url.Values{"type": {"attributes"}, "dataset": {dataset}, "mart": {mart}})
	if err != nil {
		return nil, err
	}

	attributes := make([]Attribute, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: attributes row has %d columns, want at least 2", ErrParse, len(row))
		}
		a := Attribute{
			Name:        row[0],
			Description: row[1],
		}
		if len(row) > 3 {
			a.Page = row[3]
		}
		attributes = append(attributes, a)
	}
	return attributes, nil
}

// listing fetches a metadata listing and splits it into tab-separated rows.
// Listings have no header line; blank lines are skipped.
func (c *Client) listing(ctx context.Context, params url.Values) ([][]string, error) {
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	if msg, ok := serviceError(body); ok {
		return nil, fmt.Errorf("%w: %s", ErrService, msg)
	}

	rows, err := splitRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s listing: %v", ErrParse, params.Get("type"), err)
	}
	return rows, nil
}

// splitOptions parses the allowed-values column of a filter listing, a
// comma-separated list wrapped in square brackets.
func splitOptions(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
