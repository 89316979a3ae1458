package response_models

type PackingItemResponse struct {
	ID      string `json:"id"`
	Item    string `json:"item"`
	Note    string `json:"note"`
	Checked bool   `json:"checked"`
}

type PackingCategoryResponse struct {
	Category string                `json:"category"`
	Items    []PackingItemResponse `json:"items"`
}

type PackingChecklistResponse struct {
	Categories []PackingCategoryResponse `json:"categories"`
	Packed     int                       `json:"packed"`
	Total      int                       `json:"total"`
}
