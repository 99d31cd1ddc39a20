package model

// Columns is the fixed header of the TSUM import format, in output order.
var Columns = []string{
	"URL", "ID", "Name", "Brand", "Article", "Gender",
	"Image2", "Ext Images", "Description", "Sizes", "Color",
	"Category", "ID2", "Combine",
}

// Record is one output row. Every column is always present; missing source
// data leaves the value empty rather than dropping the column.
type Record struct {
	URL         string
	ID          string
	Name        string
	Brand       string
	Article     string
	Gender      string
	Image2      string
	ExtImages   string
	Description string
	Sizes       string
	Color       string
	Category    string
	ID2         string
	Combine     string
}

// Row returns the record's values in Columns order.
func (r *Record) Row() []string {
	return []string{
		r.URL, r.ID, r.Name, r.Brand, r.Article, r.Gender,
		r.Image2, r.ExtImages, r.Description, r.Sizes, r.Color,
		r.Category, r.ID2, r.Combine,
	}
}

// RawPage is a fetched page snapshot kept in the optional Postgres archive.
type RawPage struct {
	ID        string
	ProductID string
	SourceURL string
	HTML      string
}
