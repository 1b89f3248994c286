// Package biomart provides an HTTP client for the BioMart martservice API.
//
// # Overview
//
// BioMart servers expose a single `martservice` endpoint that answers both
// metadata listings (marts, datasets, filters, attributes) and data queries.
// Listings come back as XML (the mart registry) or tab-separated text; query
// results come back as tab-separated text described by an XML query document
// sent with the request.
//
// # Client Pattern
//
//	client := biomart.New("https://www.ensembl.org/biomart/martservice")
//	marts, err := client.Marts(ctx)
//	datasets, err := client.Datasets(ctx, "ENSEMBL_MART_ENSEMBL")
//
// Queries are assembled with [QueryBuilder] and executed with [Client.Query]:
//
//	query := biomart.NewQueryBuilder().
//		Mart("ensembl").
//		Dataset("hsapiens_gene_ensembl").
//		Attributes("affy_hg_u133_plus_2", "entrezgene_id").
//		Filter("affy_hg_u133_plus_2", "202763_at", "209310_s_at").
//		Build()
//	resp, err := client.Query(ctx, query)
//
// # Errors
//
// All failures wrap one of three sentinel errors: [ErrNetwork] for transport
// failures, [ErrService] for error responses from the server (non-2xx status
// or a "Query ERROR" payload), and [ErrParse] when a response body cannot be
// decoded into the expected shape. The client never retries and never caches;
// each method call is exactly one HTTP round-trip.
package biomart
