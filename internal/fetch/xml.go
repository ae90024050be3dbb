package fetch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Wire types for the efetch PubmedArticleSet payload. Title and abstract
// fragments are captured as inner XML because PubMed embeds presentation
// markup (<i>, <sub>, …) inside them.

type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
	PubmedData      pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID            string      `xml:"PMID"`
	Article         articleElem `xml:"Article"`
	KeywordList     keywordList `xml:"KeywordList"`
	MeshHeadingList meshList    `xml:"MeshHeadingList"`
}

type articleElem struct {
	Title               xmlFragment  `xml:"ArticleTitle"`
	Abstract            abstractElem `xml:"Abstract"`
	AuthorList          authorList   `xml:"AuthorList"`
	Journal             journalElem  `xml:"Journal"`
	PublicationTypeList pubTypeList  `xml:"PublicationTypeList"`
}

// xmlFragment keeps embedded markup intact; a plain string field would drop
// the text inside child elements.
type xmlFragment struct {
	Text string `xml:",innerxml"`
}

type abstractElem struct {
	Texts []abstractText `xml:"AbstractText"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",innerxml"`
}

type authorList struct {
	Authors []author `xml:"Author"`
}

type author struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type journalElem struct {
	Title           string       `xml:"Title"`
	ISOAbbreviation string       `xml:"ISOAbbreviation"`
	JournalIssue    journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type pubTypeList struct {
	Types []string `xml:"PublicationType"`
}

type keywordList struct {
	Keywords []string `xml:"Keyword"`
}

type meshList struct {
	Headings []meshHeading `xml:"MeshHeading"`
}

type meshHeading struct {
	DescriptorName string `xml:"DescriptorName"`
}

type pubmedData struct {
	ArticleIDs []articleID `xml:"ArticleIdList>ArticleId"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

var markupRe = regexp.MustCompile(`<[^>]+>`)

// StripMarkup flattens embedded presentation markup to plain text. It goes
// through goquery so nested tags and entities are handled the way a
// browser would; fragments that fail to parse fall back to a plain tag
// strip.
func StripMarkup(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + fragment + "</div>"))
	if err != nil {
		return strings.TrimSpace(markupRe.ReplaceAllString(fragment, ""))
	}
	return strings.TrimSpace(doc.Text())
}
