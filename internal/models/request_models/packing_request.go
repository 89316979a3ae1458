package request_models

type TogglePackingRequest struct {
	Category string `json:"category"`
	Item     string `json:"item"`
}
