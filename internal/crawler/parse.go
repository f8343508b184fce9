package crawler

import (
	"errors"
	"html"
	"net"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

const (
	listingSelector     = ".jv-job-list-name"
	descriptionSelector = ".jv-job-detail-description"
	metaSelector        = ".jv-job-detail-meta"
	showMoreText        = "Show More"

	// Jobvite paints descriptions on an explicit white background.
	whiteBackground = "background-color: rgb(255,255,255);"
)

var (
	errNoDescription = errors.New("job description not found")

	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	metaSeparatorSet = regexp.MustCompile(`[|,]`)
)

type listingEntry struct {
	id    string
	title string
}

type jobDetail struct {
	description string
	sector      string
	workMode    string
	country     string
}

// parseListing returns the postings linked from a listing page. Entries
// without a link or a title are skipped.
func parseListing(doc *goquery.Document) []listingEntry {
	var out []listingEntry
	doc.Find(listingSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a").First().Attr("href")
		if !ok {
			return
		}
		id := idFromHref(href)
		title := strings.TrimSpace(s.Text())
		if id == "" || title == "" {
			return
		}
		out = append(out, listingEntry{id: id, title: title})
	})
	return out
}

// idFromHref returns the last path segment of a posting link.
func idFromHref(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}

// showMoreLinks resolves every "Show More" anchor on the page against base.
func showMoreLinks(doc *goquery.Document, base *url.URL) []*url.URL {
	var out []*url.URL
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if !strings.Contains(s.Text(), showMoreText) {
			return
		}
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""
		out = append(out, abs)
	})
	return out
}

// sameSite reports whether a and b share a registrable domain. Hosts without
// one (IP addresses, single-label names) must match exactly.
func sameSite(a, b *url.URL) bool {
	ha, hb := strings.ToLower(a.Hostname()), strings.ToLower(b.Hostname())
	if ha == hb {
		return true
	}
	if net.ParseIP(ha) != nil || net.ParseIP(hb) != nil {
		return false
	}
	ra, errA := publicsuffix.EffectiveTLDPlusOne(ha)
	rb, errB := publicsuffix.EffectiveTLDPlusOne(hb)
	if errA != nil || errB != nil {
		return false
	}
	return ra == rb
}

// parseDetail extracts the description HTML and the classification line from
// a posting page. A page without a description is an error; missing meta
// leaves the classification empty.
func parseDetail(doc *goquery.Document) (jobDetail, error) {
	desc := doc.Find(descriptionSelector).First()
	if desc.Length() == 0 {
		return jobDetail{}, errNoDescription
	}
	inner, err := desc.Html()
	if err != nil {
		return jobDetail{}, err
	}
	inner = strings.ReplaceAll(inner, whiteBackground, "none")
	inner = strings.ReplaceAll(inner, "\n", "")

	d := jobDetail{description: strings.TrimSpace(inner)}

	meta := doc.Find(metaSelector).First()
	if meta.Length() == 0 {
		return d, nil
	}
	raw, err := meta.Html()
	if err != nil {
		return d, nil
	}
	parts := splitMeta(raw)
	if len(parts) > 0 {
		d.sector = parts[0]
	}
	if len(parts) > 1 {
		d.workMode = parts[1]
	}
	if len(parts) > 2 {
		d.country = parts[2]
	}
	return d, nil
}

// splitMeta turns meta markup such as
// `Engineering<span>|</span>Remote, Brazil` into its non-empty text parts.
func splitMeta(raw string) []string {
	text := tagPattern.ReplaceAllString(raw, "|")
	var parts []string
	for _, p := range metaSeparatorSet.Split(text, -1) {
		p = strings.TrimSpace(html.UnescapeString(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
