package request_models

type GuidePromptRequest struct {
	Prompt string `json:"prompt"`
}
