package trip_models

const DefaultPackingCategory = "uncategorized"

type PackingEntry struct {
	ID       string `json:"id"`
	Category string `json:"Category"`
	Item     string `json:"Item"`
	Note     string `json:"Note"`
}

// CheckKey is the key of the entry's checked flag: "{category}-{item}".
func CheckKey(category, item string) string {
	return category + "-" + item
}
