// Package fetch implements the PubMed collaborator: searching and fetching
// bibliographic records through the NCBI E-utilities API and parsing them
// into core.Article records. Retry and backoff for transient failures live
// here; the analysis engine never touches the network.
package fetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nephscope/internal/config"
	"nephscope/internal/core"
	"nephscope/internal/logger"
)

const retryBackoffBase = time.Second

// Client talks to the NCBI E-utilities endpoints.
type Client struct {
	baseURL            string
	email              string
	apiKey             string
	retryAttempts      int
	searchPause        time.Duration
	queries            []config.SearchQuery
	highImpactJournals []string
	httpClient         *http.Client
}

// NewClient creates a PubMed client from configuration. The journal
// allow-list drives the is_high_impact flag on every parsed record.
func NewClient(cfg config.PubMed, highImpactJournals []string) *Client {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	pause, err := time.ParseDuration(cfg.SearchPause)
	if err != nil || pause < 0 {
		pause = 500 * time.Millisecond
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 3
	}

	return &Client{
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		email:              cfg.Email,
		apiKey:             cfg.APIKey,
		retryAttempts:      attempts,
		searchPause:        pause,
		queries:            cfg.Queries,
		highImpactJournals: highImpactJournals,
		httpClient:         &http.Client{Timeout: timeout},
	}
}

// FetchAll runs every configured search category and returns the grouped
// record set. Categories whose search returned no hits are omitted. When
// highImpactOnly is set, articles outside the journal allow-list are
// dropped after parsing.
func (c *Client) FetchAll(ctx context.Context, daysBack, maxResults int, highImpactOnly bool) (core.RecordSet, error) {
	results := make(core.RecordSet)

	for i, q := range c.queries {
		logger.Infof("searching category %s", q.ID)

		pmids, err := c.Search(ctx, q.Query, maxResults, daysBack)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", q.ID, err)
		}
		logger.Infof("category %s matched %d articles", q.ID, len(pmids))

		if len(pmids) > 0 {
			articles, err := c.FetchDetails(ctx, pmids)
			if err != nil {
				return nil, fmt.Errorf("fetch details %s: %w", q.ID, err)
			}

			if highImpactOnly {
				kept := articles[:0]
				for _, a := range articles {
					if a.IsHighImpact {
						kept = append(kept, a)
					}
				}
				articles = kept
			}

			results[q.ID] = core.CategoryResult{
				Name:            q.Name,
				NameLocalized:   q.NameLocalized,
				Topics:          q.Topics,
				Articles:        articles,
				Count:           len(articles),
				SearchTimestamp: time.Now().UTC().Format(time.RFC3339),
				DaysBack:        daysBack,
			}
		}

		// Stay under the NCBI request rate between categories.
		if i < len(c.queries)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.searchPause):
			}
		}
	}

	return results, nil
}

// Search runs an esearch query restricted to the trailing daysBack window
// and returns the matching PMIDs.
func (c *Client) Search(ctx context.Context, query string, maxResults, daysBack int) ([]string, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -daysBack)
	dateRange := fmt.Sprintf("%s:%s[dp]", start.Format("2006/01/02"), end.Format("2006/01/02"))

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", fmt.Sprintf("(%s) AND %s", query, dateRange))
	params.Set("retmax", fmt.Sprintf("%d", maxResults))
	params.Set("sort", "relevance")
	params.Set("retmode", "json")

	body, err := c.get(ctx, c.baseURL+"/esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode esearch response: %w", err)
	}
	return parsed.ESearchResult.IDList, nil
}

// FetchDetails runs efetch for the given PMIDs and parses the XML payload.
func (c *Client) FetchDetails(ctx context.Context, pmids []string) ([]core.Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, c.baseURL+"/efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	return c.ParseArticleSet(body)
}

// get issues one API request with the identification parameters NCBI asks
// for, retrying transient failures with linearly increasing backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("email", c.email)
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	requestURL := endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoffBase * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			logger.Warnf("pubmed request failed (attempt %d/%d): %v", attempt+1, c.retryAttempts, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
			logger.Warnf("pubmed request failed (attempt %d/%d): %v", attempt+1, c.retryAttempts, lastErr)
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("pubmed request failed after %d attempts: %w", c.retryAttempts, lastErr)
}

// ParseArticleSet parses an efetch PubmedArticleSet payload. Individual
// records that cannot be interpreted are skipped, not fatal.
func (c *Client) ParseArticleSet(payload []byte) ([]core.Article, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("parse efetch response: %w", err)
	}

	articles := make([]core.Article, 0, len(set.Articles))
	for _, raw := range set.Articles {
		if raw.MedlineCitation.PMID == "" || raw.MedlineCitation.Article.Title.Text == "" {
			continue
		}
		articles = append(articles, c.buildArticle(raw))
	}
	return articles, nil
}

func (c *Client) buildArticle(raw pubmedArticle) core.Article {
	elem := raw.MedlineCitation.Article

	var abstractParts []string
	for _, at := range elem.Abstract.Texts {
		text := StripMarkup(at.Text)
		if at.Label != "" {
			abstractParts = append(abstractParts, at.Label+": "+text)
		} else {
			abstractParts = append(abstractParts, text)
		}
	}

	var authors []string
	for _, a := range elem.AuthorList.Authors {
		if a.LastName == "" {
			continue
		}
		authors = append(authors, strings.TrimSpace(a.LastName+" "+a.ForeName))
	}

	journal := elem.Journal.Title
	if journal == "" {
		journal = elem.Journal.ISOAbbreviation
	}

	pd := elem.Journal.JournalIssue.PubDate
	pubDate := strings.TrimSpace(strings.Join(compact(pd.Year, pd.Month, pd.Day), " "))

	doi := ""
	for _, id := range raw.PubmedData.ArticleIDs {
		if id.IDType == "doi" {
			doi = strings.TrimSpace(id.Value)
			break
		}
	}

	pmid := raw.MedlineCitation.PMID
	return core.Article{
		PMID:         pmid,
		Title:        StripMarkup(elem.Title.Text),
		Abstract:     strings.Join(abstractParts, " "),
		Authors:      authors,
		Journal:      journal,
		PubDate:      pubDate,
		PubTypes:     elem.PublicationTypeList.Types,
		Keywords:     raw.MedlineCitation.KeywordList.Keywords,
		MeshTerms:    meshDescriptors(raw.MedlineCitation.MeshHeadingList.Headings),
		DOI:          doi,
		IsHighImpact: c.isHighImpact(journal),
		PubMedURL:    fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
		FetchedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// isHighImpact reports whether the journal substring-matches the allow-list.
func (c *Client) isHighImpact(journal string) bool {
	lower := strings.ToLower(journal)
	for _, hj := range c.highImpactJournals {
		if strings.Contains(lower, strings.ToLower(hj)) {
			return true
		}
	}
	return false
}

func meshDescriptors(headings []meshHeading) []string {
	var terms []string
	for _, h := range headings {
		if h.DescriptorName != "" {
			terms = append(terms, h.DescriptorName)
		}
	}
	return terms
}

func compact(parts ...string) []string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}
