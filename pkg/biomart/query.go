package biomart

import (
	"encoding/xml"
	"strings"
)

// xmlHeader precedes every serialized query document. The martservice
// insists on the DOCTYPE declaration.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE Query>`

// Defaults of the query document, matching the grammar version the public
// Ensembl installation serves.
const (
	defaultConfigVersion = "0.6"
	defaultFormatter     = "TSV"
	defaultRequestID     = "go-biomart"
	defaultSchema        = "default"
)

// Query is an immutable, fully serialized BioMart query document, produced
// by [QueryBuilder.Build] and executed with [Client.Query].
type Query struct {
	mart    string
	dataset string
	xml     string
}

// Mart returns the mart name the query was built for. The name is carried
// for callers and logs; the wire document addresses datasets through the
// virtual schema instead.
func (q *Query) Mart() string { return q.mart }

// Dataset returns the dataset name the query addresses.
func (q *Query) Dataset() string { return q.dataset }

// XML returns the serialized query document.
func (q *Query) XML() string { return q.xml }

// String returns the serialized query document.
func (q *Query) String() string { return q.xml }

type filterKind int

const (
	filterValues filterKind = iota
	filterExcluded
	filterIncluded
)

type filterSpec struct {
	name   string
	values []string
	kind   filterKind
}

// QueryBuilder accumulates the parts of a query. Builders are not safe for
// concurrent use; the [Query] values they produce are.
//
// Build performs no validation against a live schema: any name strings
// produce a well-formed document, and the server reports unknown names as
// query errors.
type QueryBuilder struct {
	mart       string
	dataset    string
	schema     string
	requestID  string
	formatter  string
	header     bool
	uniqueRows bool
	count      bool
	attributes []string
	filters    []filterSpec
}

// NewQueryBuilder creates a builder with the standard document defaults:
// virtual schema "default", TSV formatter, header row enabled, unique rows
// enabled, count disabled.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		schema:     defaultSchema,
		requestID:  defaultRequestID,
		formatter:  defaultFormatter,
		header:     true,
		uniqueRows: true,
	}
}

// Mart sets the mart name. See [Query.Mart] for how it is used.
func (b *QueryBuilder) Mart(mart string) *QueryBuilder {
	b.mart = mart
	return b
}

// Dataset sets the dataset the query addresses.
func (b *QueryBuilder) Dataset(dataset string) *QueryBuilder {
	b.dataset = dataset
	return b
}

// Attribute appends one requested output column.
func (b *QueryBuilder) Attribute(name string) *QueryBuilder {
	b.attributes = append(b.attributes, name)
	return b
}

// Attributes appends several requested output columns in order.
func (b *QueryBuilder) Attributes(names ...string) *QueryBuilder {
	b.attributes = append(b.attributes, names...)
	return b
}

// Filter appends a value filter. The values are joined with "," in the
// serialized document.
func (b *QueryBuilder) Filter(name string, values ...string) *QueryBuilder {
	b.filters = append(b.filters, filterSpec{name: name, values: values, kind: filterValues})
	return b
}

// ExcludeFilter appends a boolean filter that excludes matching rows
// (serialized as excluded="1").
func (b *QueryBuilder) ExcludeFilter(name string) *QueryBuilder {
	b.filters = append(b.filters, filterSpec{name: name, kind: filterExcluded})
	return b
}

// IncludeFilter appends a boolean filter that restricts results to matching
// rows (serialized as excluded="0").
func (b *QueryBuilder) IncludeFilter(name string) *QueryBuilder {
	b.filters = append(b.filters, filterSpec{name: name, kind: filterIncluded})
	return b
}

// VirtualSchema overrides the virtual schema name, "default" on almost every
// installation. Mart registry entries report theirs in
// [Mart.VirtualSchema].
func (b *QueryBuilder) VirtualSchema(schema string) *QueryBuilder {
	b.schema = schema
	return b
}

// RequestID overrides the requestid document attribute, useful for tracing
// queries in server logs.
func (b *QueryBuilder) RequestID(id string) *QueryBuilder {
	b.requestID = id
	return b
}

// Formatter overrides the result format (default "TSV").
func (b *QueryBuilder) Formatter(formatter string) *QueryBuilder {
	b.formatter = formatter
	return b
}

// Header controls whether the result carries a header row (default true).
func (b *QueryBuilder) Header(enabled bool) *QueryBuilder {
	b.header = enabled
	return b
}

// UniqueRows controls result deduplication (default true).
func (b *QueryBuilder) UniqueRows(enabled bool) *QueryBuilder {
	b.uniqueRows = enabled
	return b
}

// Count requests a row count instead of the rows themselves (default false).
func (b *QueryBuilder) Count(enabled bool) *QueryBuilder {
	b.count = enabled
	return b
}

type xmlQuery struct {
	XMLName              xml.Name `xml:"Query"`
	VirtualSchemaName    string   `xml:"virtualSchemaName,attr"`
	UniqueRows           int      `xml:"uniqueRows,attr"`
	Count                int      `xml:"count,attr"`
	DatasetConfigVersion string   `xml:"datasetConfigVersion,attr"`
	Header               int      `xml:"header,attr"`
	Formatter            string   `xml:"formatter,attr"`
	RequestID            string   `xml:"requestid,attr"`
	Dataset              xmlDataset
}

type xmlDataset struct {
	XMLName    xml.Name       `xml:"Dataset"`
	Name       string         `xml:"name,attr"`
	Filters    []xmlFilter    `xml:"Filter"`
	Attributes []xmlAttribute `xml:"Attribute"`
}

type xmlFilter struct {
	Name     string `xml:"name,attr"`
	Value    string `xml:"value,attr,omitempty"`
	Excluded string `xml:"excluded,attr,omitempty"`
}

type xmlAttribute struct {
	Name string `xml:"name,attr"`
}

// Build serializes the accumulated parts into an immutable [Query]. It is
// pure: building twice from the same builder state yields identical
// documents, and the builder stays usable afterwards.
func (b *QueryBuilder) Build() *Query {
	doc := xmlQuery{
		VirtualSchemaName:    b.schema,
		UniqueRows:           boolAttr(b.uniqueRows),
		Count:                boolAttr(b.count),
		DatasetConfigVersion: defaultConfigVersion,
		Header:               boolAttr(b.header),
		Formatter:            b.formatter,
		RequestID:            b.requestID,
		Dataset:              xmlDataset{Name: b.dataset},
	}
	for _, f := range b.filters {
		xf := xmlFilter{Name: f.name}
		switch f.kind {
		case filterExcluded:
			xf.Excluded = "1"
		case filterIncluded:
			xf.Excluded = "0"
		default:
			xf.Value = strings.Join(f.values, ",")
		}
		doc.Dataset.Filters = append(doc.Dataset.Filters, xf)
	}
	for _, a := range b.attributes {
		doc.Dataset.Attributes = append(doc.Dataset.Attributes, xmlAttribute{Name: a})
	}

	// Marshaling a static struct cannot fail.
	raw, _ := xml.Marshal(doc)

	return &Query{
		mart:    b.mart,
		dataset: b.dataset,
		xml:     xmlHeader + string(raw),
	}
}

func boolAttr(b bool) int {
	if b {
		return 1
	}
	return 0
}
