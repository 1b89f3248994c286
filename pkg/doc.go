// Package pkg provides the libraries behind the biomart command.
//
// # Overview
//
// go-biomart talks to BioMart web services, the query interface in front of
// biological databases such as Ensembl. The pkg directory is organized into:
//
//  1. [biomart] - The client library: mart registry, dataset listings and
//     TSV queries.
//  2. [errors] - Structured errors with machine-readable codes, used by the
//     CLI layer.
//  3. [observability] - Pluggable hooks for HTTP instrumentation.
//  4. [buildinfo] - Version information injected at build time.
//
// # Quick Start
//
// Query Ensembl for the Entrez ids of a few microarray probes:
//
//	client := biomart.New("")
//
//	query := biomart.NewQueryBuilder().
//	    Mart("ENSEMBL_MART_ENSEMBL").
//	    Dataset("hsapiens_gene_ensembl").
//	    Filter("affy_hg_u133_plus_2", "202763_s_at", "209310_s_at").
//	    Attributes("affy_hg_u133_plus_2", "entrezgene_id").
//	    Build()
//
//	resp, err := client.Query(ctx, query)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...
//
// [biomart]: https://pkg.go.dev/github.com/tedil/go-biomart/pkg/biomart
// [errors]: https://pkg.go.dev/github.com/tedil/go-biomart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tedil/go-biomart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/tedil/go-biomart/pkg/buildinfo
package pkg
