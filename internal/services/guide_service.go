package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"tabi/internal/models/trip_models"
	"tabi/pkg/utils"
)

const (
	guideTimeout        = 30 * time.Second
	guideContextEntries = 10
)

type GuideServiceInterface interface {
	// Suggest always answers; provider failures fall back to the built-in rules.
	Suggest(ctx context.Context, prompt string, itinerary []trip_models.ItineraryEntry) (string, error)
}

type GuideService struct {
	client utils.GuideClientInterface
	logger *zap.Logger
}

// NewGuideService accepts a nil client.
func NewGuideService(client utils.GuideClientInterface, logger *zap.Logger) GuideServiceInterface {
	return &GuideService{client: client, logger: logger}
}

func (s *GuideService) Suggest(ctx context.Context, prompt string, itinerary []trip_models.ItineraryEntry) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", utils.ErrEmptyPrompt
	}
	if s.client == nil {
		return RuleBasedAnswer(prompt), nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, guideTimeout)
	defer cancel()

	answer, err := s.client.GenerateSuggestion(ctxWithTimeout, buildGuidePrompt(prompt, itinerary))
	if err != nil {
		s.logger.Warn("guide provider failed, answering from rules", zap.Error(err))
		return RuleBasedAnswer(prompt), nil
	}
	return answer, nil
}

func buildGuidePrompt(question string, itinerary []trip_models.ItineraryEntry) string {
	if len(itinerary) > guideContextEntries {
		itinerary = itinerary[:guideContextEntries]
	}
	plan, err := json.Marshal(itinerary)
	if err != nil {
		plan = []byte("[]")
	}

	return fmt.Sprintf(`You are a cheerful local guide for a trip to Osaka. Keep the tone cute and upbeat, emoticons welcome.
Current itinerary: %s
The traveller asks: %q
Give 2-3 short suggestions. Prefer places that fit around the itinerary. Keep the answer brief.`, plan, question)
}

type guideRule struct {
	keywords []string
	answer   string
}

var guideRules = []guideRule{
	{
		keywords: []string{"雨", "rain"},
		answer:   "Raining? 🌧️\nHead indoors: the HEP FIVE Ferris wheel or the Umeda Sky Building keep you dry.",
	},
	{
		keywords: []string{"吃", "餓", "餐廳", "eat", "hungry", "food", "restaurant"},
		answer:   "Hungry? 😋\nWagyu yakiniku or Ichiran ramen are calling. Check whether you need a reservation first!",
	},
	{
		keywords: []string{"累", "休息", "tired", "rest"},
		answer:   "Feeling tired? 🍵\nFind a café nearby and sort through the photos you just took.",
	},
	{
		keywords: []string{"買", "逛", "buy", "shop"},
		answer:   "Shopping time? 🛍️\nShinsaibashi and Dotonbori are the places to go. Compare prices across drugstores!",
	},
}

const genericGuideAnswer = "Got it! ✨\nLook for something nearby on your list, or head back to the hotel for a break before the next stop."

// RuleBasedAnswer matches keywords in order and falls back to a generic answer.
func RuleBasedAnswer(prompt string) string {
	p := strings.ToLower(prompt)
	for _, rule := range guideRules {
		for _, kw := range rule.keywords {
			if strings.Contains(p, kw) {
				return rule.answer
			}
		}
	}
	return genericGuideAnswer
}
