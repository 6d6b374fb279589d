package model

// Cities is the reference list of marketplace cities, mirrored from the
// mobile app. Used by the directory city filter and the dashboard breakdown.
var Cities = []string{
	"N'Djamena",
	"Moundou",
	"Sarh",
	"Abéché",
	"Kelo",
	"Koumra",
	"Pala",
	"Am Timan",
	"Bongor",
	"Mongo",
	"Doba",
	"Ati",
	"Laï",
	"Fada",
	"Oum Hadjer",
	"Massenya",
	"Bokoro",
	"Bitkine",
	"Mao",
	"Bol",
	"Biltine",
	"Zouar",
	"Iriba",
}

// Category is a listing category with its display label.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Categories is the reference list of listing categories.
var Categories = []Category{
	{Key: "auto", Label: "Auto"},
	{Key: "service", Label: "Service"},
	{Key: "immobilier", Label: "Real Estate"},
	{Key: "electronique_energie", Label: "Electrical & Energy"},
	{Key: "emploi", Label: "Jobs"},
	{Key: "voyage_tourisme", Label: "Travel & Tourism"},
	{Key: "mode", Label: "Fashion"},
	{Key: "meubles", Label: "Furniture"},
	{Key: "beaute", Label: "Beauty"},
	{Key: "pieces_tache", Label: "Spare Parts"},
	{Key: "phones", Label: "Phones"},
	{Key: "electronics", Label: "Electronics"},
	{Key: "sports", Label: "Sports"},
	{Key: "agriculture", Label: "Agriculture"},
	{Key: "education", Label: "Education"},
	{Key: "pro", Label: "Professional"},
}

// CategoryLabel resolves a category key to its label, falling back to the
// raw key for unknown categories.
func CategoryLabel(key string) string {
	for _, c := range Categories {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}
