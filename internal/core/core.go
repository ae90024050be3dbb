package core

import "sort"

// Article represents one bibliographic record fetched from PubMed.
type Article struct {
	PMID         string   `json:"pmid"`           // PubMed identifier, unique within a run
	Title        string   `json:"title"`          // Article title
	Abstract     string   `json:"abstract"`       // Free-text abstract, may be empty
	Authors      []string `json:"authors"`        // Ordered author list ("LastName ForeName")
	Journal      string   `json:"journal"`        // Journal title
	PubDate      string   `json:"pub_date"`       // Free-text publication date (e.g. "2024 Mar 15"), compared lexically
	PubTypes     []string `json:"pub_types"`      // Controlled-vocabulary publication type labels
	Keywords     []string `json:"keywords"`       // Author keywords
	MeshTerms    []string `json:"mesh_terms"`     // MeSH descriptor names
	DOI          string   `json:"doi"`            // Digital object identifier
	IsHighImpact bool     `json:"is_high_impact"` // Journal matched the high-impact allow-list
	Category     string   `json:"category"`       // Search category assigned on ingestion, exclusive per run
	CategoryName string   `json:"category_name"`  // Display name of the assigned category
	PubMedURL    string   `json:"pubmed_url"`     // Link to the PubMed entry
	FetchedAt    string   `json:"fetched_at"`     // Timestamp when the record was fetched
}

// CategoryResult holds the articles fetched for one search category.
type CategoryResult struct {
	Name            string    `json:"name"`             // Category display name
	NameLocalized   string    `json:"name_localized"`   // Localized category display name
	Topics          []string  `json:"topics"`           // Curated topic labels for the category
	Articles        []Article `json:"articles"`         // Fetched articles
	Count           int       `json:"count"`            // Number of articles
	SearchTimestamp string    `json:"search_timestamp"` // When the search ran
	DaysBack        int       `json:"days_back"`        // Search window in days
}

// RecordSet maps a category id to its fetch result. It is the unit handed
// from the fetch collaborator to the analysis engine.
type RecordSet map[string]CategoryResult

// CategoryIDs returns the category ids in sorted order so repeated runs
// iterate the set identically.
func (rs RecordSet) CategoryIDs() []string {
	ids := make([]string, 0, len(rs))
	for id := range rs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flatten returns every article across all categories, each tagged with its
// category id and display name.
func (rs RecordSet) Flatten() []Article {
	var all []Article
	for _, id := range rs.CategoryIDs() {
		data := rs[id]
		for _, a := range data.Articles {
			a.Category = id
			a.CategoryName = data.Name
			all = append(all, a)
		}
	}
	return all
}
