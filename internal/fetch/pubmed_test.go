package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nephscope/internal/config"
)

const sampleArticleSet = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>40000001</PMID>
      <Article>
        <Journal>
          <Title>Kidney International</Title>
          <ISOAbbreviation>Kidney Int</ISOAbbreviation>
          <JournalIssue>
            <PubDate>
              <Year>2026</Year>
              <Month>Aug</Month>
              <Day>12</Day>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Effect of <i>SGLT2</i> inhibition on eGFR decline</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Decline is progressive.</AbstractText>
          <AbstractText Label="RESULTS">Decline slowed by 40&#37;.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Chen</LastName>
            <ForeName>Wei</ForeName>
          </Author>
          <Author>
            <CollectiveName>Study Group</CollectiveName>
          </Author>
        </AuthorList>
        <PublicationTypeList>
          <PublicationType>Randomized Controlled Trial</PublicationType>
          <PublicationType>Journal Article</PublicationType>
        </PublicationTypeList>
      </Article>
      <KeywordList>
        <Keyword>SGLT2</Keyword>
        <Keyword>chronic kidney disease</Keyword>
      </KeywordList>
      <MeshHeadingList>
        <MeshHeading>
          <DescriptorName>Renal Insufficiency, Chronic</DescriptorName>
        </MeshHeading>
      </MeshHeadingList>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">40000001</ArticleId>
        <ArticleId IdType="doi">10.1016/j.kint.2026.08.001</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <ArticleTitle>Record without a PMID is skipped</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newTestClient(baseURL string) *Client {
	return NewClient(config.PubMed{
		BaseURL:       baseURL,
		Email:         "test@example.com",
		Timeout:       "5s",
		RetryAttempts: 2,
		SearchPause:   "1ms",
	}, []string{"Kidney International"})
}

func TestParseArticleSet(t *testing.T) {
	c := newTestClient("http://unused")
	articles, err := c.ParseArticleSet([]byte(sampleArticleSet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 parsed article, got %d", len(articles))
	}

	a := articles[0]
	if a.PMID != "40000001" {
		t.Errorf("unexpected PMID: %q", a.PMID)
	}
	if a.Title != "Effect of SGLT2 inhibition on eGFR decline" {
		t.Errorf("expected markup-stripped title, got %q", a.Title)
	}
	if a.Abstract != "BACKGROUND: Decline is progressive. RESULTS: Decline slowed by 40%." {
		t.Errorf("unexpected labeled abstract: %q", a.Abstract)
	}
	if len(a.Authors) != 1 || a.Authors[0] != "Chen Wei" {
		t.Errorf("unexpected authors: %v", a.Authors)
	}
	if a.Journal != "Kidney International" {
		t.Errorf("unexpected journal: %q", a.Journal)
	}
	if a.PubDate != "2026 Aug 12" {
		t.Errorf("unexpected pub date: %q", a.PubDate)
	}
	if a.DOI != "10.1016/j.kint.2026.08.001" {
		t.Errorf("unexpected DOI: %q", a.DOI)
	}
	if !a.IsHighImpact {
		t.Error("expected high-impact flag from journal allow-list")
	}
	if a.PubMedURL != "https://pubmed.ncbi.nlm.nih.gov/40000001/" {
		t.Errorf("unexpected PubMed URL: %q", a.PubMedURL)
	}
	if len(a.PubTypes) != 2 || a.PubTypes[0] != "Randomized Controlled Trial" {
		t.Errorf("unexpected pub types: %v", a.PubTypes)
	}
	if len(a.MeshTerms) != 1 || a.MeshTerms[0] != "Renal Insufficiency, Chronic" {
		t.Errorf("unexpected mesh terms: %v", a.MeshTerms)
	}
	if a.FetchedAt == "" {
		t.Error("expected fetched timestamp")
	}
}

func TestIsHighImpactSubstringMatch(t *testing.T) {
	c := newTestClient("http://unused")

	if !c.isHighImpact("Kidney International Reports") {
		t.Error("expected substring match against the allow-list")
	}
	if c.isHighImpact("Local Nephrology Bulletin") {
		t.Error("unexpected high-impact match")
	}
	if c.isHighImpact("") {
		t.Error("empty journal must not match")
	}
}

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/esearch.fcgi") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("term")
		w.Write([]byte(`{"esearchresult":{"idlist":["101","102"]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	pmids, err := c.Search(context.Background(), "nephrology", 50, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pmids) != 2 || pmids[0] != "101" {
		t.Errorf("unexpected pmids: %v", pmids)
	}
	if !strings.HasPrefix(gotQuery, "(nephrology) AND ") || !strings.HasSuffix(gotQuery, "[dp]") {
		t.Errorf("expected date-restricted term, got %q", gotQuery)
	}
}

func TestGetRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"esearchresult":{"idlist":["201"]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	pmids, err := c.Search(context.Background(), "nephrology", 10, 7)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if len(pmids) != 1 || pmids[0] != "201" {
		t.Errorf("unexpected pmids: %v", pmids)
	}
}

func TestGetExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Search(context.Background(), "nephrology", 10, 7); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text passes through", "plain text passes through"},
		{"<i>eGFR</i> decline in <b>CKD</b>", "eGFR decline in CKD"},
		{"A &amp; B", "A & B"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
