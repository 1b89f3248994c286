package biomart

import (
	"strings"
	"testing"
)

func TestQueryBuilderBuild(t *testing.T) {
	query := NewQueryBuilder().
		Mart("ensembl").
		Dataset("hsapiens_gene_ensembl").
		Attributes("affy_hg_u133_plus_2", "entrezgene_id").
		Filter("affy_hg_u133_plus_2", "202763_at", "209310_s_at", "207500_at").
		Build()

	want := `<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE Query>` +
		`<Query virtualSchemaName="default" uniqueRows="1" count="0" datasetConfigVersion="0.6" header="1" formatter="TSV" requestid="go-biomart">` +
		`<Dataset name="hsapiens_gene_ensembl">` +
		`<Filter name="affy_hg_u133_plus_2" value="202763_at,209310_s_at,207500_at"></Filter>` +
		`<Attribute name="affy_hg_u133_plus_2"></Attribute>` +
		`<Attribute name="entrezgene_id"></Attribute>` +
		`</Dataset></Query>`

	if got := query.XML(); got != want {
		t.Errorf("XML()\n got: %s\nwant: %s", got, want)
	}
	if query.Mart() != "ensembl" {
		t.Errorf("Mart() = %q, want %q", query.Mart(), "ensembl")
	}
	if query.Dataset() != "hsapiens_gene_ensembl" {
		t.Errorf("Dataset() = %q, want %q", query.Dataset(), "hsapiens_gene_ensembl")
	}
}

func TestQueryBuilderDeterministic(t *testing.T) {
	builder := NewQueryBuilder().
		Dataset("hsapiens_gene_ensembl").
		Attribute("entrezgene_id").
		Filter("chromosome_name", "X", "Y")

	first := builder.Build()
	second := builder.Build()

	if first.XML() != second.XML() {
		t.Errorf("repeated builds differ:\n%s\n%s", first.XML(), second.XML())
	}
}

func TestQueryBuilderEscapesValues(t *testing.T) {
	query := NewQueryBuilder().
		Dataset(`ds<&"`).
		Attribute("a<b").
		Filter("f", "1&2").
		Build()

	xml := query.XML()
	for _, escaped := range []string{"&lt;", "&amp;", "&#34;"} {
		if !strings.Contains(xml, escaped) {
			t.Errorf("XML() missing escape %q: %s", escaped, xml)
		}
	}
	for _, raw := range []string{`ds<`, `1&2`, `a<b`} {
		if strings.Contains(xml, raw) {
			t.Errorf("XML() contains unescaped %q: %s", raw, xml)
		}
	}
}

func TestQueryBuilderBooleanFilters(t *testing.T) {
	query := NewQueryBuilder().
		Dataset("hsapiens_gene_ensembl").
		ExcludeFilter("with_refseq_peptide").
		IncludeFilter("with_entrezgene").
		Build()

	xml := query.XML()
	if !strings.Contains(xml, `<Filter name="with_refseq_peptide" excluded="1"></Filter>`) {
		t.Errorf("missing exclusion filter: %s", xml)
	}
	if !strings.Contains(xml, `<Filter name="with_entrezgene" excluded="0"></Filter>`) {
		t.Errorf("missing inclusion filter: %s", xml)
	}
}

func TestQueryBuilderDocumentOptions(t *testing.T) {
	query := NewQueryBuilder().
		Dataset("ds").
		VirtualSchema("plants").
		RequestID("trace-1").
		Formatter("CSV").
		Header(false).
		UniqueRows(false).
		Count(true).
		Build()

	xml := query.XML()
	wantAttrs := []string{
		`virtualSchemaName="plants"`,
		`uniqueRows="0"`,
		`count="1"`,
		`header="0"`,
		`formatter="CSV"`,
		`requestid="trace-1"`,
	}
	for _, attr := range wantAttrs {
		if !strings.Contains(xml, attr) {
			t.Errorf("XML() missing %s: %s", attr, xml)
		}
	}
}

func TestQueryBuilderFilterOrderPreserved(t *testing.T) {
	query := NewQueryBuilder().
		Dataset("ds").
		Filter("b", "2").
		Filter("a", "1").
		Build()

	xml := query.XML()
	if strings.Index(xml, `name="b"`) > strings.Index(xml, `name="a"`) {
		t.Errorf("filters not serialized in insertion order: %s", xml)
	}
}
