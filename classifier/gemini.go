package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"servedc-be/models"
)

const geminiModel = "gemini-3-flash-preview"

// Enrichment is the outcome of processing a new announcement: a category
// that is always a valid enum member, and optionally a geocoded location.
type Enrichment struct {
	Category models.Category
	Location *models.Location
}

// Client enriches announcements with Gemini. Without an API key it is a
// local-only client that classifies by keywords and never touches the
// network. Enrich never fails; every error path degrades to the keyword
// classifier.
type Client struct {
	ai *genai.Client
}

// NewClient builds the enrichment client. An empty key or a failed client
// init yields a local-only client rather than an error so the app works
// without any configuration.
func NewClient(ctx context.Context, apiKey string) *Client {
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, using local keyword classification")
		return &Client{}
	}

	ai, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		log.Printf("Gemini client init failed, using local keyword classification: %v", err)
		return &Client{}
	}

	return &Client{ai: ai}
}

// Enrich asks Gemini to categorize the announcement and, when an address is
// supplied or inferable from the text, geocode it within Washington, DC.
func (c *Client) Enrich(ctx context.Context, text, address string) Enrichment {
	if c == nil || c.ai == nil {
		return Enrichment{Category: Classify(text)}
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   enrichmentSchema(),
	}

	result, err := c.ai.Models.GenerateContent(ctx, geminiModel, genai.Text(buildPrompt(text, address)), config)
	if err != nil {
		log.Printf("Gemini request failed (likely quota or key issue): %v", err)
		return Enrichment{Category: Classify(text)}
	}
	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return Enrichment{Category: Classify(text)}
	}

	return decodeEnrichment(result.Candidates[0].Content.Parts[0].Text, text)
}

func buildPrompt(text, address string) string {
	locationHint := "Try to extract a location from the text if mentioned (e.g. 14th and U, Columbia Heights)."
	if strings.TrimSpace(address) != "" {
		locationHint = fmt.Sprintf("The user provided this address: %q.", address)
	}

	return fmt.Sprintf(`Analyze this community announcement for Washington DC: %q.
%s

Task:
1. Categorize it as one of: Safety, Urgent Help, Giveaway, Social Impact, General.
2. If an address is provided or mentioned, return the approximate latitude and longitude within Washington, DC.`, text, locationHint)
}

func enrichmentSchema() *genai.Schema {
	categories := models.Categories()
	values := make([]string, len(categories))
	for i, cat := range categories {
		values[i] = string(cat)
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {
				Type:        genai.TypeString,
				Description: "The best fitting category",
				Enum:        values,
			},
			"location": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"lat":     {Type: genai.TypeNumber},
					"lng":     {Type: genai.TypeNumber},
					"address": {Type: genai.TypeString},
				},
				Required: []string{"lat", "lng", "address"},
			},
		},
		Required: []string{"category"},
	}
}

// decodeEnrichment parses the model's JSON payload. An unparseable payload
// or an unrecognized category degrades to the keyword classifier; a location
// missing any of its three fields is dropped rather than kept partial.
func decodeEnrichment(raw, text string) Enrichment {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var payload struct {
		Category string `json:"category"`
		Location *struct {
			Lat     *float64 `json:"lat"`
			Lng     *float64 `json:"lng"`
			Address string   `json:"address"`
		} `json:"location"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("Gemini response parse failed: %v", err)
		return Enrichment{Category: Classify(text)}
	}

	category, ok := models.ParseCategory(payload.Category)
	if !ok {
		category = Classify(text)
	}

	var location *models.Location
	if loc := payload.Location; loc != nil && loc.Lat != nil && loc.Lng != nil && loc.Address != "" {
		location = &models.Location{Lat: *loc.Lat, Lng: *loc.Lng, Address: loc.Address}
	}

	return Enrichment{Category: category, Location: location}
}
