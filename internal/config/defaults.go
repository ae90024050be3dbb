package config

// DefaultSearchQueries returns the built-in nephrology search strategy:
// high-quality clinical studies split into a pediatric and an adult
// category. An article is assigned to exactly one category per run.
func DefaultSearchQueries() []SearchQuery {
	return []SearchQuery{
		{
			ID:            "pediatric_nephrology",
			Name:          "Pediatric Nephrology",
			NameLocalized: "兒童腎臟學",
			Query: "(pediatric nephrology[MeSH Terms] OR " +
				"child kidney disease[Title/Abstract] OR " +
				"pediatric kidney[Title/Abstract] OR " +
				"childhood nephropathy[Title/Abstract] OR " +
				"pediatric renal[Title/Abstract] OR " +
				"children kidney[Title/Abstract] OR " +
				"neonatal kidney[Title/Abstract] OR " +
				"adolescent nephrology[Title/Abstract]) " +
				"AND " +
				"(clinical trial[Publication Type] OR " +
				"randomized controlled trial[Publication Type] OR " +
				"meta-analysis[Publication Type] OR " +
				"systematic review[Publication Type] OR " +
				"cohort study[Title/Abstract] OR " +
				"prospective study[Title/Abstract] OR " +
				"multicenter study[Title/Abstract])",
			Topics: []string{
				"急性腎損傷 (AKI)",
				"慢性腎臟病 (CKD)",
				"腎病症候群",
				"腎絲球腎炎",
				"先天性腎臟異常 (CAKUT)",
				"血液透析/腹膜透析",
				"腎臟移植",
				"泌尿道感染",
				"遺傳性腎臟病",
				"高血壓與腎臟",
			},
		},
		{
			ID:            "adult_nephrology",
			Name:          "Adult Nephrology",
			NameLocalized: "成人腎臟學",
			Query: "(nephrology[MeSH Terms] OR " +
				"kidney disease[MeSH Terms] OR " +
				"renal insufficiency[MeSH Terms] OR " +
				"chronic kidney disease[Title/Abstract] OR " +
				"acute kidney injury[Title/Abstract] OR " +
				"glomerulonephritis[Title/Abstract] OR " +
				"dialysis[Title/Abstract] OR " +
				"kidney transplantation[Title/Abstract]) " +
				"NOT " +
				"(pediatric[Title/Abstract] OR " +
				"children[Title/Abstract] OR " +
				"child[Title/Abstract] OR " +
				"neonatal[Title/Abstract] OR " +
				"adolescent[Title/Abstract]) " +
				"AND " +
				"(clinical trial[Publication Type] OR " +
				"randomized controlled trial[Publication Type] OR " +
				"meta-analysis[Publication Type] OR " +
				"systematic review[Publication Type] OR " +
				"cohort study[Title/Abstract] OR " +
				"prospective study[Title/Abstract] OR " +
				"multicenter study[Title/Abstract]) " +
				"AND adult[MeSH Terms]",
			Topics: []string{
				"急性腎損傷 (AKI)",
				"慢性腎臟病 (CKD)",
				"糖尿病腎病變",
				"高血壓腎病變",
				"腎絲球腎炎",
				"血液透析",
				"腹膜透析",
				"腎臟移植",
				"多囊腎",
				"電解質異常",
				"腎臟腫瘤",
			},
		},
	}
}

// DefaultHighImpactJournals returns the journal allow-list used for the
// is_high_impact flag. Matching is a case-insensitive substring test.
func DefaultHighImpactJournals() []string {
	return []string{
		"N Engl J Med",
		"Lancet",
		"JAMA",
		"BMJ",
		"Ann Intern Med",
		"J Am Soc Nephrol",
		"Kidney Int",
		"Am J Kidney Dis",
		"Clin J Am Soc Nephrol",
		"Nephrol Dial Transplant",
		"Pediatr Nephrol",
		"Am J Transplant",
		"Transplantation",
		"Nat Rev Nephrol",
		"Kidney Int Rep",
		"J Clin Invest",
		"JAMA Intern Med",
		"JAMA Pediatr",
		"Pediatrics",
		"J Pediatr",
	}
}

// DefaultTaxonomy returns the ordered trend keyword taxonomy. Category and
// keyword order fix the first-seen order used to break ranking ties.
func DefaultTaxonomy() []TaxonomyCategory {
	return []TaxonomyCategory{
		{
			Name: "治療方法",
			Keywords: []string{
				"SGLT2 inhibitor", "GLP-1", "finerenone", "dapagliflozin",
				"empagliflozin", "canagliflozin", "immunotherapy",
				"gene therapy", "stem cell", "biologics",
			},
		},
		{
			Name: "診斷技術",
			Keywords: []string{
				"biomarker", "machine learning", "artificial intelligence",
				"proteomics", "metabolomics", "genetic testing",
				"point-of-care", "digital health",
			},
		},
		{
			Name: "研究主題",
			Keywords: []string{
				"cardiovascular", "heart failure", "inflammation",
				"fibrosis", "oxidative stress", "gut microbiome",
				"precision medicine", "personalized", "telemedicine",
			},
		},
		{
			Name: "臨床結局",
			Keywords: []string{
				"mortality", "hospitalization", "quality of life",
				"patient-reported outcomes", "cost-effectiveness",
				"eGFR decline", "proteinuria", "ESKD",
			},
		},
	}
}
