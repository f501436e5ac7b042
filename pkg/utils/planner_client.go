package utils

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pgvector/pgvector-go"
)

// PlannerActivity is the slim view of an activity that gets serialized into
// the model prompt. The planner never needs more than this.
type PlannerActivity struct {
	ID       string
	Name     string
	Category string
	Duration string
}

// PlannerClientInterface is the generative backend used for itinerary
// planning and for the activity-suggestion embeddings. Implementations must
// honor ctx cancellation: the caller owns the deadline.
type PlannerClientInterface interface {
	GenerateItineraryJSON(ctx context.Context, destination string, activities []PlannerActivity, dayCount int) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// NewPlannerClient creates either an OpenAI or Gemini backed client.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

// buildItineraryPrompt produces the shared JSON-only instruction both
// providers send. Exact envelope keys matter: the service parses them back.
func buildItineraryPrompt(destination string, activities []PlannerActivity, dayCount int) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Create a %d-day itinerary for a trip to %s. Return JSON only:\n", dayCount, destination)
	prompt.WriteString(`{"itinerary":[{"day":1,"activities":[{"id":"activity-id","name":"Activity name","timeSlot":"09:00 - 11:00"}]}]}`)

	prompt.WriteString("\n\nSelected activities:\n")
	for _, a := range activities {
		fmt.Fprintf(&prompt, "- ID:%s | Name:%s | Category:%s | Duration:%s\n", a.ID, a.Name, a.Category, a.Duration)
	}

	prompt.WriteString("\nHard constraints:\n")
	fmt.Fprintf(&prompt, "- Exactly %d days in \"itinerary\", day = 1..%d, no gaps.\n", dayCount, dayCount)
	prompt.WriteString("- Use only activity IDs from the list, each at most once.\n")
	prompt.WriteString("- Keep each day within a realistic time budget given the durations.\n")
	prompt.WriteString("- Group activities that are geographically or thematically close on the same day.\n")
	prompt.WriteString("- Alternate activity types for pacing, timeSlot formatted as HH:MM - HH:MM.\n")
	prompt.WriteString("\nReturn JSON only. No comments, no markdown.")

	return prompt.String()
}

// Planner responses are cached briefly so a user regenerating the same trip
// does not burn quota. Shared by both providers.
var planCache = gocache.New(time.Hour, 2*time.Hour)

func planCacheKey(destination string, activities []PlannerActivity, dayCount int) string {
	h := sha256.New()
	h.Write([]byte(destination))
	fmt.Fprintf(h, "%d", dayCount)
	for _, a := range activities {
		h.Write([]byte(a.ID))
		h.Write([]byte(a.Name))
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

func cachedPlan(key string) (string, bool) {
	if v, ok := planCache.Get(key); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func storePlan(key, content string) {
	planCache.Set(key, content, gocache.DefaultExpiration)
}
