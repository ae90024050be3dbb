package core

import (
	"reflect"
	"testing"
)

func TestCategoryIDsSorted(t *testing.T) {
	rs := RecordSet{
		"pediatric_nephrology": {},
		"adult_nephrology":     {},
	}

	got := rs.CategoryIDs()
	want := []string{"adult_nephrology", "pediatric_nephrology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFlattenTagsCategory(t *testing.T) {
	rs := RecordSet{
		"pediatric_nephrology": {
			Name:     "Pediatric Nephrology",
			Articles: []Article{{PMID: "2"}},
		},
		"adult_nephrology": {
			Name:     "Adult Nephrology",
			Articles: []Article{{PMID: "1"}},
		},
	}

	all := rs.Flatten()
	if len(all) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(all))
	}
	// Categories flatten in sorted id order.
	if all[0].PMID != "1" || all[0].Category != "adult_nephrology" || all[0].CategoryName != "Adult Nephrology" {
		t.Errorf("unexpected first article: %+v", all[0])
	}
	if all[1].PMID != "2" || all[1].Category != "pediatric_nephrology" {
		t.Errorf("unexpected second article: %+v", all[1])
	}
	// The originals stay untagged.
	if rs["adult_nephrology"].Articles[0].Category != "" {
		t.Error("expected Flatten to leave the stored articles unmodified")
	}
}
