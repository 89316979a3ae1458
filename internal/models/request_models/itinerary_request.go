package request_models

type DestinationRequest struct {
	Activity string `json:"activity"`
	Link     string `json:"link"`
}
