package crawler

import (
	"encoding/json"
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"pdpfeed/internal/model"
)

var (
	savedFromRe = regexp.MustCompile(`saved from url=\([^)]+\)(https://[^\s]+)`)
	swymRe      = regexp.MustCompile(`(?s)window\.SwymProductInfo\.product\s*=\s*(\{.*?\});`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

// BuildRecord maps extracted fields plus values derived from the page markup
// onto one output record. pageURL is the caller-supplied URL and may be empty
// for saved pages, in which case the URL is recovered from the page itself.
func BuildRecord(data *ProductData, html, pageURL, siteOrigin string) *model.Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc = nil
	}

	rec := &model.Record{
		URL:      productURL(html, doc, pageURL),
		ID:       data.Product,
		Name:     data.Title,
		Brand:    data.Vendor,
		Category: data.Type,
		ID2:      uuid.New().String(),
	}

	if len(data.Images) > 0 {
		rec.Image2 = absoluteImageURL(data.Images[0], siteOrigin)
	}
	switch {
	case len(data.Images) >= 3:
		rec.ExtImages = absoluteImageURL(data.Images[1], siteOrigin) + "," + absoluteImageURL(data.Images[2], siteOrigin)
	case len(data.Images) == 2:
		rec.ExtImages = absoluteImageURL(data.Images[1], siteOrigin)
	}

	rec.Description = description(html, doc)

	var sizes []string
	seen := map[string]bool{}
	for _, v := range data.Variants {
		if v.Label != "" && !seen[v.Label] {
			seen[v.Label] = true
			sizes = append(sizes, v.Label)
		}
	}
	rec.Sizes = strings.Join(sizes, ",")
	if len(data.Variants) > 0 {
		rec.Article = data.Variants[0].SKU
	}

	// Color, Gender and Combine have no source signal and stay empty.
	return rec
}

// productURL resolves the record URL: caller-supplied value first, then the
// "saved from url=(...)" marker browsers leave in saved pages, then the
// canonical link element.
func productURL(html string, doc *goquery.Document, pageURL string) string {
	if pageURL != "" {
		return pageURL
	}
	if m := savedFromRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if doc != nil {
		if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
			return href
		}
	}
	return ""
}

// absoluteImageURL rewrites protocol-relative and site-relative image paths
// to absolute URLs against the storefront origin.
func absoluteImageURL(u, siteOrigin string) string {
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "/"):
		return siteOrigin + u
	default:
		return u
	}
}

// description tries the SwymProductInfo blob first, then the meta description,
// then the Open Graph description. First non-empty source wins.
func description(html string, doc *goquery.Document) string {
	if m := swymRe.FindStringSubmatch(html); m != nil {
		blob := unescapePath(m[1])
		var info struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal([]byte(blob), &info); err == nil {
			if text := stripHTML(info.Description); text != "" {
				return text
			}
		}
	}

	if doc != nil {
		if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && content != "" {
			return content
		}
		if content, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}

// stripHTML flattens embedded markup to plain text: tags become separators,
// entities are decoded, whitespace runs collapse to single spaces.
func stripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = stdhtml.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
