package biomart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const registryXML = `<MartRegistry>
    <MartURLLocation database="ensembl_mart_99" default="1" displayName="Ensembl Genes 99" host="www.ensembl.org" includeDatasets="" martUser="" name="ENSEMBL_MART_ENSEMBL" path="/biomart/martservice" port="80" serverVirtualSchema="default" visible="1" />
</MartRegistry>`

func TestClientMarts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "registry" {
			t.Errorf("type = %q, want registry", got)
		}
		fmt.Fprint(w, registryXML)
	}))
	defer server.Close()

	marts, err := New(server.URL).Marts(context.Background())
	if err != nil {
		t.Fatalf("Marts failed: %v", err)
	}

	want := []Mart{{
		Name:          "ENSEMBL_MART_ENSEMBL",
		DisplayName:   "Ensembl Genes 99",
		Database:      "ensembl_mart_99",
		Host:          "www.ensembl.org",
		Port:          80,
		Path:          "/biomart/martservice",
		VirtualSchema: "default",
		Visible:       true,
		Default:       true,
	}}
	if !reflect.DeepEqual(marts, want) {
		t.Errorf("Marts = %+v, want %+v", marts, want)
	}
}

func TestClientMartsMalformedRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<MartRegistry><MartURLLocation")
	}))
	defer server.Close()

	_, err := New(server.URL).Marts(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Errorf("Marts = %v, want ErrParse", err)
	}
}

func TestClientDatasets(t *testing.T) {
	body := "TableSet\thsapiens_gene_ensembl\tHuman genes (GRCh38.p14)\t1\tGRCh38.p14\tdefault\t1\t2023-10-18\n" +
		"\n" +
		"TableSet\tmmusculus_gene_ensembl\tMouse genes (GRCm39)\t0\tGRCm39\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "datasets" || q.Get("mart") != "ENSEMBL_MART_ENSEMBL" {
			t.Errorf("unexpected params: %v", q)
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	datasets, err := New(server.URL).Datasets(context.Background(), "ENSEMBL_MART_ENSEMBL")
	if err != nil {
		t.Fatalf("Datasets failed: %v", err)
	}

	want := []Dataset{
		{Type: "TableSet", Name: "hsapiens_gene_ensembl", Description: "Human genes (GRCh38.p14)", Visible: true, Version: "GRCh38.p14"},
		{Type: "TableSet", Name: "mmusculus_gene_ensembl", Description: "Mouse genes (GRCm39)", Visible: false, Version: "GRCm39"},
	}
	if !reflect.DeepEqual(datasets, want) {
		t.Errorf("Datasets = %+v, want %+v", datasets, want)
	}
}

func TestClientFilters(t *testing.T) {
	body := "chromosome_name\tChromosome/scaffold name\t[1,2,X,Y,MT]\tfilters\tfilters\tlist\t=\n" +
		"entrezgene_id\tNCBI gene ID(s)\t\tfilters\tfilters\ttext\t=,in\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "filters" || q.Get("dataset") != "hsapiens_gene_ensembl" {
			t.Errorf("unexpected params: %v", q)
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	filters, err := New(server.URL).Filters(context.Background(), "ENSEMBL_MART_ENSEMBL", "hsapiens_gene_ensembl")
	if err != nil {
		t.Fatalf("Filters failed: %v", err)
	}

	want := []Filter{
		{Name: "chromosome_name", Description: "Chromosome/scaffold name", Type: "list", Options: []string{"1", "2", "X", "Y", "MT"}},
		{Name: "entrezgene_id", Description: "NCBI gene ID(s)", Type: "text"},
	}
	if !reflect.DeepEqual(filters, want) {
		t.Errorf("Filters = %+v, want %+v", filters, want)
	}
}

func TestClientAttributes(t *testing.T) {
	body := "ensembl_gene_id\tGene stable ID\tStable ID of the gene\tfeature_page\n" +
		"entrezgene_id\tNCBI gene ID\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "attributes" || q.Get("dataset") != "hsapiens_gene_ensembl" {
			t.Errorf("unexpected params: %v", q)
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	attributes, err := New(server.URL).Attributes(context.Background(), "ENSEMBL_MART_ENSEMBL", "hsapiens_gene_ensembl")
	if err != nil {
		t.Fatalf("Attributes failed: %v", err)
	}

	want := []Attribute{
		{Name: "ensembl_gene_id", Description: "Gene stable ID", Page: "feature_page"},
		{Name: "entrezgene_id", Description: "NCBI gene ID"},
	}
	if !reflect.DeepEqual(attributes, want) {
		t.Errorf("Attributes = %+v, want %+v", attributes, want)
	}
}

func TestClientQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		xml := r.PostForm.Get("query")
		if xml == "" {
			t.Error("missing query form value")
		}
		fmt.Fprint(w, resultBody)
	}))
	defer server.Close()

	query := NewQueryBuilder().
		Mart("ensembl").
		Dataset("hsapiens_gene_ensembl").
		Attributes("affy_hg_u133_plus_2", "entrezgene_id").
		Filter("affy_hg_u133_plus_2", "202763_at", "209310_s_at", "207500_at").
		Build()

	resp, err := New(server.URL).Query(context.Background(), query)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if resp.Raw() != resultBody {
		t.Errorf("Raw() = %q, want %q", resp.Raw(), resultBody)
	}
	rows, err := resp.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}

func TestClientQueryErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Query ERROR: caught BioMart::Exception::Usage: Filter no_such_filter NOT FOUND\n")
	}))
	defer server.Close()

	query := NewQueryBuilder().Dataset("hsapiens_gene_ensembl").Filter("no_such_filter", "x").Build()

	_, err := New(server.URL).Query(context.Background(), query)
	if !errors.Is(err, ErrService) {
		t.Errorf("Query = %v, want ErrService", err)
	}
}

func TestClientServiceStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.Marts(context.Background()); !errors.Is(err, ErrService) {
		t.Errorf("Marts = %v, want ErrService", err)
	}
	query := NewQueryBuilder().Dataset("ds").Build()
	if _, err := client.Query(context.Background(), query); !errors.Is(err, ErrService) {
		t.Errorf("Query = %v, want ErrService", err)
	}
}

func TestClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := New(server.URL).Marts(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Marts = %v, want ErrNetwork", err)
	}
}

func TestClientDefaultServer(t *testing.T) {
	if got := New("").Server(); got != DefaultServerURL {
		t.Errorf("Server() = %q, want %q", got, DefaultServerURL)
	}
}
