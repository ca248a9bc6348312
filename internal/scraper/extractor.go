package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"olx-scraper/internal/domain"
)

const (
	// Anchors that look like item pages, plus anchors carrying the site's
	// item-title marker attribute. Matches are unioned in document order.
	listingSelector = `a[href*="/item/"], a[data-aut-id="itemTitle"]`

	snippetMaxRunes = 300
	contextHops     = 3
)

var (
	// Crude price extraction (₹ 1,234 etc.)
	priceRe = regexp.MustCompile(`₹\s?[\d,]+`)

	// Location heuristic: patterns like "in <place>", "at <place>" or
	// "• <place>". Known to over- or under-capture on multi-clause text;
	// kept as-is since there is no ground truth to validate against.
	locationRe = regexp.MustCompile(`(?:in|at|•)\s+([A-Z][A-Za-z .,-]{2,})`)
)

// ExtractListings parses a search-result page body and extracts one Listing
// per candidate anchor. Relative hrefs are resolved against the origin of
// baseURL. Duplicate URLs within the same page keep the first occurrence.
// Malformed markup never raises an error; unmatched fields stay empty.
func ExtractListings(body, baseURL string) []domain.Listing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host}

	var listings []domain.Listing
	seen := make(map[string]struct{})

	doc.Find(listingSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		abs := resolveHref(origin, href)
		if abs == "" {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}

		listing := domain.Listing{
			Title: visibleText(a),
			URL:   abs,
		}

		if text := contextText(a); text != "" {
			listing.Snippet = truncateRunes(text, snippetMaxRunes)
			listing.PriceGuess = priceRe.FindString(text)
			if m := locationRe.FindStringSubmatch(text); m != nil {
				listing.LocationGuess = strings.TrimSpace(m[1])
			}
		}

		listings = append(listings, listing)
		seen[abs] = struct{}{}
	})

	return listings
}

// contextText bubbles up at most contextHops parents from the anchor and
// returns that ancestor's collapsed text. A bounded loop keeps termination
// obvious; it stops early at the document root.
func contextText(a *goquery.Selection) string {
	node := a
	for i := 0; i < contextHops; i++ {
		parent := node.Parent()
		if parent.Length() == 0 {
			break
		}
		node = parent
	}
	return visibleText(node)
}

// visibleText returns the element's text with runs of whitespace collapsed
// and one space between adjacent text nodes, so sibling elements don't glue
// together the way a raw text concatenation would.
func visibleText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// truncateRunes cuts by rune so multi-byte characters are never split.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func resolveHref(origin *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return origin.ResolveReference(ref).String()
}
