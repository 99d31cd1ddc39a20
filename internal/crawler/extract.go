package crawler

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoData is returned when a page carries no recognizable product data
// block at all.
var ErrNoData = errors.New("product data block not found")

// Variant is one purchasable size/SKU combination as listed on the page.
type Variant struct {
	Label string
	SKU   string
}

// ProductData holds the fields recovered from the script-embedded data block.
// Any field the page does not expose stays zero-valued.
type ProductData struct {
	Product  string
	Title    string
	Vendor   string
	Type     string
	Images   []string
	Variants []Variant
}

// The embedded object is not valid JSON, so fields are recovered one by one
// with literal-key patterns instead of a structural parse. Each pattern scans
// the full page and the first match wins, even if the key text happens to
// occur inside an unrelated string. That matches the behavior downstream
// consumers were calibrated against.
var (
	dataBlockRe = regexp.MustCompile(`(?s)KiwiSizing\.data\s*=\s*\{.*?\};`)
	productRe   = regexp.MustCompile(`product:\s*"([^"]+)"`)
	titleRe     = regexp.MustCompile(`title:\s*"([^"]+)"`)
	vendorRe    = regexp.MustCompile(`vendor:\s*"([^"]+)"`)
	typeRe      = regexp.MustCompile(`type:\s*"([^"]+)"`)
	imagesRe    = regexp.MustCompile(`(?s)images:\s*\[(.*?)\]`)
	quotedRe    = regexp.MustCompile(`"([^"]+)"`)
	variantsRe  = regexp.MustCompile(`(?s)variants:\s*\[(.*?)\]`)
	variantRe   = regexp.MustCompile(`\{"id":\d+.*?"public_title":"([^"]+)".*?"sku":"([^"]+)"`)
)

// Extract recovers product fields from raw page text. It fails with ErrNoData
// only when the data block is absent entirely; individual fields that do not
// match are simply left empty.
func Extract(html string) (*ProductData, error) {
	if !dataBlockRe.MatchString(html) {
		return nil, ErrNoData
	}

	d := &ProductData{}

	if m := productRe.FindStringSubmatch(html); m != nil {
		d.Product = m[1]
	}
	if m := titleRe.FindStringSubmatch(html); m != nil {
		d.Title = m[1]
	}
	if m := vendorRe.FindStringSubmatch(html); m != nil {
		d.Vendor = m[1]
	}
	if m := typeRe.FindStringSubmatch(html); m != nil {
		d.Type = m[1]
	}

	if m := imagesRe.FindStringSubmatch(html); m != nil {
		for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
			d.Images = append(d.Images, unescapePath(q[1]))
		}
	}

	if m := variantsRe.FindStringSubmatch(html); m != nil {
		for _, v := range variantRe.FindAllStringSubmatch(m[1], -1) {
			d.Variants = append(d.Variants, Variant{Label: v[1], SKU: v[2]})
		}
	}

	return d, nil
}

func unescapePath(s string) string {
	return strings.ReplaceAll(s, `\/`, "/")
}
