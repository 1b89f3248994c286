package biomart

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Mart describes one MartURLLocation entry of the server registry.
//
// Zero values: all string fields are empty, Port is 0, Visible and Default
// are false. Marts are immutable values produced by [Client.Marts].
type Mart struct {
	Name            string `xml:"name,attr"`                // Registry identifier (e.g., "ENSEMBL_MART_ENSEMBL")
	DisplayName     string `xml:"displayName,attr"`         // Human-readable name (e.g., "Ensembl Genes 99")
	Database        string `xml:"database,attr"`            // Backing database (e.g., "ensembl_mart_99")
	Host            string `xml:"host,attr"`                // Server host
	Port            Port   `xml:"port,attr"`                // Server port
	Path            string `xml:"path,attr"`                // martservice path on the host
	VirtualSchema   string `xml:"serverVirtualSchema,attr"` // Virtual schema queries should address
	IncludeDatasets string `xml:"includeDatasets,attr"`     // Comma-separated dataset restriction (usually empty)
	MartUser        string `xml:"martUser,attr"`            // Access user (usually empty)
	Visible         Flag   `xml:"visible,attr"`             // Whether the mart is shown in UIs
	Default         Flag   `xml:"default,attr"`             // Whether the mart is the server default
}

// Flag is a boolean registry attribute. The service encodes these as "0" and
// "1", but installations in the wild also emit "true"/"false" or leave them
// empty; anything unrecognized decodes as false rather than failing the
// whole registry.
type Flag bool

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (f *Flag) UnmarshalXMLAttr(attr xml.Attr) error {
	switch strings.ToLower(strings.TrimSpace(attr.Value)) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Port is an integer registry attribute with the same tolerance as [Flag]:
// a missing or unparsable value decodes as 0.
type Port int

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (p *Port) UnmarshalXMLAttr(attr xml.Attr) error {
	n, err := strconv.Atoi(strings.TrimSpace(attr.Value))
	if err != nil {
		*p = 0
		return nil
	}
	*p = Port(n)
	return nil
}

type martRegistry struct {
	XMLName xml.Name `xml:"MartRegistry"`
	Marts   []Mart   `xml:"MartURLLocation"`
}

// Marts fetches the server registry and returns all marts it advertises.
//
// Returns [ErrNetwork] on transport failure, [ErrService] for non-success
// statuses and [ErrParse] when the registry XML is malformed.
func (c *Client) Marts(ctx context.Context) ([]Mart, error) {
	body, err := c.get(ctx, url.Values{"type": {"registry"}})
	if err != nil {
		return nil, err
	}

	var registry martRegistry
	if err := xml.Unmarshal([]byte(body), &registry); err != nil {
		return nil, fmt.Errorf("%w: registry: %v", ErrParse, err)
	}
	return registry.Marts, nil
}
