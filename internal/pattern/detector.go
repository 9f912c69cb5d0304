package pattern

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector infers a SitePattern from one sample thread page. For every role
// it records all catalog candidates that match the sample, in catalog order:
// a page can exhibit more than one structural variant for the same role and
// keeping every hit costs nothing. Roles with no hits are omitted entirely.
type Detector struct {
	catalog Catalog
}

func NewDetector() *Detector {
	return &Detector{catalog: DefaultCatalog()}
}

func NewDetectorWithCatalog(catalog Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Detect probes the catalog against the sample document. It never fails: a
// document matching nothing yields a pattern with every role omitted.
func (d *Detector) Detect(doc *goquery.Document, sampleURL string) SitePattern {
	p := SitePattern{
		Version:    SchemaVersion,
		SampleURL:  sampleURL,
		Selectors:  map[string][]string{},
		Classes:    map[string][]string{},
		Attributes: map[string]string{},
	}

	for _, role := range []string{
		RolePostContainer, RoleAuthor, RoleDate,
		RoleReactions, RoleAttachments, RolePagination,
	} {
		var hits []string
		for _, sel := range d.catalog.Selectors[role] {
			if doc.Find(sel).Length() > 0 {
				hits = append(hits, sel)
			}
		}
		if role == RolePostContainer {
			if sel := detectArticleContainer(doc); sel != "" {
				hits = append(hits, sel)
			}
		}
		if len(hits) > 0 {
			p.Selectors[role] = hits
		}
	}

	if classes := d.detectContentClasses(doc); len(classes) > 0 {
		p.Classes[ClassContentWrapper] = classes
	}
	if attr := d.detectPostIDAttr(doc); attr != "" {
		p.Attributes[AttrPostID] = attr
	}

	log.Printf("Detected %d selector roles for %s", len(p.Selectors), sampleURL)
	return p
}

// detectArticleContainer looks for <article> post containers and builds a
// selector from their first two classes, e.g. "article.message.message--post".
func detectArticleContainer(doc *goquery.Document) string {
	selector := ""
	doc.Find("article").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		raw, ok := s.Attr("class")
		if !ok {
			return true
		}
		classes := strings.Fields(raw)
		for _, c := range classes {
			if strings.Contains(c, "message") || strings.Contains(c, "post") {
				if len(classes) > 2 {
					classes = classes[:2]
				}
				selector = "article." + strings.Join(classes, ".")
				return false
			}
		}
		return true
	})
	return selector
}

func (d *Detector) detectContentClasses(doc *goquery.Document) []string {
	var hits []string
	for _, class := range d.catalog.ContentClasses {
		if doc.Find("."+class).Length() > 0 {
			hits = append(hits, class)
		}
	}
	return hits
}

// detectPostIDAttr picks the first catalog attribute present anywhere on the
// page. Unlike the selector roles this is a single value, not a list.
func (d *Detector) detectPostIDAttr(doc *goquery.Document) string {
	for _, attr := range d.catalog.PostIDAttrs {
		if doc.Find("[" + attr + "]").Length() > 0 {
			return attr
		}
	}
	return ""
}
