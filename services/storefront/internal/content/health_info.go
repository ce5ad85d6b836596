package content

// Section is one collapsible block on the health-info page.
type Section struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Facts []string `json:"facts,omitempty"`
}

var healthInfo = []Section{
	{
		ID:    "nutrition",
		Title: "Nutritional value",
		Body:  "Mushrooms are low in calories and fat and provide protein, fibre and B vitamins.",
		Facts: []string{
			"About 22 kcal per 100 g of fresh button mushrooms",
			"Source of riboflavin, niacin and pantothenic acid",
			"Naturally free of cholesterol",
		},
	},
	{
		ID:    "vitamin-d",
		Title: "Vitamin D",
		Body:  "Mushrooms exposed to sunlight or UV light are one of the few plant-based sources of vitamin D.",
	},
	{
		ID:    "immunity",
		Title: "Immune support",
		Body:  "Beta-glucans found in oyster and shiitake mushrooms are studied for their role in immune response.",
	},
	{
		ID:    "storage",
		Title: "Storage and handling",
		Body:  "Keep fresh mushrooms refrigerated in a paper bag and use within five days.",
		Facts: []string{
			"Do not wash until just before cooking",
			"Dried mushrooms keep for months in an airtight jar",
		},
	},
}

// HealthInfo returns the page sections in display order.
func HealthInfo() []Section {
	out := make([]Section, len(healthInfo))
	copy(out, healthInfo)
	return out
}
