package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servedc-be/models"
)

func TestEnrichWithoutKeyUsesLocalFallback(t *testing.T) {
	client := NewClient(context.Background(), "")

	result := client.Enrich(context.Background(), "Free canned goods near Logan Circle", "")
	assert.Equal(t, models.Giveaway, result.Category)
	assert.Nil(t, result.Location)

	result = client.Enrich(context.Background(), "suspicious activity", "14th & U")
	assert.Equal(t, models.Safety, result.Category)
	assert.Nil(t, result.Location)
}

func TestDecodeEnrichmentFullPayload(t *testing.T) {
	raw := `{"category":"Urgent Help","location":{"lat":38.9431,"lng":-77.0489,"address":"Rock Creek Park"}}`
	result := decodeEnrichment(raw, "anything")

	assert.Equal(t, models.UrgentHelp, result.Category)
	require.NotNil(t, result.Location)
	assert.Equal(t, 38.9431, result.Location.Lat)
	assert.Equal(t, -77.0489, result.Location.Lng)
	assert.Equal(t, "Rock Creek Park", result.Location.Address)
}

func TestDecodeEnrichmentStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"category\":\"Safety\"}\n```"
	result := decodeEnrichment(raw, "anything")
	assert.Equal(t, models.Safety, result.Category)
	assert.Nil(t, result.Location)
}

func TestDecodeEnrichmentMalformedJSONFallsBack(t *testing.T) {
	result := decodeEnrichment("not json at all", "free couch")
	assert.Equal(t, models.Giveaway, result.Category)
	assert.Nil(t, result.Location)
}

func TestDecodeEnrichmentUnknownCategoryFallsBack(t *testing.T) {
	raw := `{"category":"Gossip"}`
	result := decodeEnrichment(raw, "volunteer day at the park")
	assert.Equal(t, models.SocialImpact, result.Category)
}

func TestDecodeEnrichmentMissingCategoryFallsBack(t *testing.T) {
	result := decodeEnrichment(`{}`, "police on the block")
	assert.Equal(t, models.Safety, result.Category)
}

func TestDecodeEnrichmentPartialLocationDropped(t *testing.T) {
	cases := []string{
		`{"category":"General","location":{"lat":38.9,"address":"somewhere"}}`,
		`{"category":"General","location":{"lng":-77.0,"address":"somewhere"}}`,
		`{"category":"General","location":{"lat":38.9,"lng":-77.0}}`,
	}
	for _, raw := range cases {
		result := decodeEnrichment(raw, "hello")
		assert.Equal(t, models.General, result.Category, "raw: %s", raw)
		assert.Nil(t, result.Location, "raw: %s", raw)
	}
}

func TestDecodeEnrichmentResultIsAlwaysValid(t *testing.T) {
	payloads := []string{
		``, `null`, `{"category":""}`, `{"category":123}`, `[]`,
		`{"category":"Safety","location":null}`,
	}
	for _, raw := range payloads {
		result := decodeEnrichment(raw, "plain message")
		_, ok := models.ParseCategory(string(result.Category))
		assert.True(t, ok, "raw: %s produced %q", raw, result.Category)
	}
}
