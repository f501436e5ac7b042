package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiPlannerClient implements PlannerClientInterface using Google's
// Gemini models.
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlannerClient) GenerateItineraryJSON(ctx context.Context, destination string, activities []PlannerActivity, dayCount int) (string, error) {
	if strings.TrimSpace(destination) == "" {
		return "", fmt.Errorf("destination cannot be empty")
	}
	if len(activities) == 0 {
		return "", fmt.Errorf("activity list cannot be empty")
	}
	if dayCount < 1 || dayCount > 30 {
		return "", fmt.Errorf("day count must be between 1 and 30, got %d", dayCount)
	}

	cacheKey := planCacheKey(destination, activities, dayCount)
	if cached, found := cachedPlan(cacheKey); found {
		log.Printf("Cache hit for %s/%d-day itinerary", destination, dayCount)
		return cached, nil
	}

	model := c.client.GenerativeModel(c.model)
	// Low temperature keeps the output deterministic enough to parse.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)
	model.SetTopP(0.5)
	model.SetTopK(10)
	model.SetMaxOutputTokens(5000)

	prompt := buildItineraryPrompt(destination, activities, dayCount)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = CleanJSONResponse(content)

	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}

	storePlan(cacheKey, content)
	return content, nil
}

// GetEmbedding generates a vector embedding for text.
// Note: the Gemini free tier has no dedicated embedding endpoint, so this
// falls back to a hash-based projection. Use the OpenAI provider when real
// embeddings matter.
func (c *GeminiPlannerClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

// textToVector creates a deterministic vector representation of text by
// distributing word hashes across the embedding dimensions.
func (c *GeminiPlannerClient) textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	const dimensions = 1536
	vector := make([]float32, dimensions)

	for _, word := range words {
		hash := c.hashWord(word)
		for i := 0; i < dimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *GeminiPlannerClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

func (c *GeminiPlannerClient) Close() error {
	return c.client.Close()
}
