package crawler

import (
	"errors"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<!-- saved from url=(0062)https://www.papadontpreach.com/products/pleated-midi-dress -->
<html>
<head>
<link rel="canonical" href="https://www.papadontpreach.com/products/pleated-midi-dress">
<meta name="description" content="A pleated midi dress in blush pink.">
<meta property="og:description" content="Pleated midi dress from the new drop.">
</head>
<body>
<script>
KiwiSizing.data = {
  shop: "papa-dont-preach.myshopify.com",
  product: "7412956465",
  title: "Pleated Midi Dress",
  vendor: "Papa Dont Preach",
  type: "Dresses",
  images: ["\/\/cdn.shopify.com\/s\/files\/1\/dress_a.jpg","\/\/cdn.shopify.com\/s\/files\/1\/dress_b.jpg","\/\/cdn.shopify.com\/s\/files\/1\/dress_c.jpg","\/\/cdn.shopify.com\/s\/files\/1\/dress_d.jpg"],
  variants: [{"id":41100,"public_title":"S","sku":"PDP-MD-01"},{"id":41200,"public_title":"M","sku":"PDP-MD-01"},{"id":41300,"public_title":"L","sku":"PDP-MD-02"}]
};
</script>
<script>
window.SwymProductInfo.product = {"id":7412956465,"description":"<p>A hand-pleated <b>midi dress<\/b> in blush.<\/p>"};
</script>
</body>
</html>`

func TestExtract(t *testing.T) {
	d, err := Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if d.Product != "7412956465" {
		t.Errorf("Product = %q, want %q", d.Product, "7412956465")
	}
	if d.Title != "Pleated Midi Dress" {
		t.Errorf("Title = %q, want %q", d.Title, "Pleated Midi Dress")
	}
	if d.Vendor != "Papa Dont Preach" {
		t.Errorf("Vendor = %q, want %q", d.Vendor, "Papa Dont Preach")
	}
	if d.Type != "Dresses" {
		t.Errorf("Type = %q, want %q", d.Type, "Dresses")
	}

	wantImages := []string{
		"//cdn.shopify.com/s/files/1/dress_a.jpg",
		"//cdn.shopify.com/s/files/1/dress_b.jpg",
		"//cdn.shopify.com/s/files/1/dress_c.jpg",
		"//cdn.shopify.com/s/files/1/dress_d.jpg",
	}
	if len(d.Images) != len(wantImages) {
		t.Fatalf("got %d images, want %d", len(d.Images), len(wantImages))
	}
	for i, want := range wantImages {
		if d.Images[i] != want {
			t.Errorf("Images[%d] = %q, want %q", i, d.Images[i], want)
		}
	}

	wantVariants := []Variant{
		{Label: "S", SKU: "PDP-MD-01"},
		{Label: "M", SKU: "PDP-MD-01"},
		{Label: "L", SKU: "PDP-MD-02"},
	}
	if len(d.Variants) != len(wantVariants) {
		t.Fatalf("got %d variants, want %d", len(d.Variants), len(wantVariants))
	}
	for i, want := range wantVariants {
		if d.Variants[i] != want {
			t.Errorf("Variants[%d] = %+v, want %+v", i, d.Variants[i], want)
		}
	}
}

func TestExtractNoDataBlock(t *testing.T) {
	_, err := Extract("<html><body><p>not a product page</p></body></html>")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestExtractPartialFields(t *testing.T) {
	page := `<script>KiwiSizing.data = { title: "Bare Product" };</script>`
	d, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if d.Title != "Bare Product" {
		t.Errorf("Title = %q, want %q", d.Title, "Bare Product")
	}
	if d.Product != "" || d.Vendor != "" || d.Type != "" {
		t.Errorf("missing fields should stay empty, got %+v", d)
	}
	if len(d.Images) != 0 || len(d.Variants) != 0 {
		t.Errorf("missing lists should stay empty, got %+v", d)
	}
}
