package request_models

type PrepTimeRequest struct {
	Minutes *int `json:"minutes"`
}

type AdjustPrepTimeRequest struct {
	Delta int `json:"delta"`
}
