package response_models

type WeatherResponse struct {
	Temp int `json:"temp"`
	Code int `json:"code"`
}

type CurrencyResponse struct {
	JPY  float64 `json:"jpy"`
	TWD  float64 `json:"twd"`
	Rate float64 `json:"rate"`
}

type PhraseResponse struct {
	Category string `json:"category"`
	Zh       string `json:"zh"`
	Jp       string `json:"jp"`
	Romaji   string `json:"romaji"`
}

type GuideResponse struct {
	Answer string `json:"answer"`
}
