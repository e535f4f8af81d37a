package planner

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_Defaults(t *testing.T) {
	prompt, err := BuildPrompt(TripRequest{Destination: "  Lisbon "})

	require.NoError(t, err)
	assert.Equal(t,
		"Plan a 5-day medium budget trip to Lisbon. Preferred activities: general sightseeing. "+
			"Walking tolerance: Moderate. Dietary preference: No Preference. Accommodation: any accommodation. "+
			"Give a detailed day-by-day itinerary with recommendations.",
		prompt)
}

func TestBuildPrompt_AllFields(t *testing.T) {
	prompt, err := BuildPrompt(TripRequest{
		Destination:   "Kyoto",
		Days:          3,
		Budget:        "High",
		Activities:    []string{"Cultural", "Food Tour"},
		Walking:       "low",
		Dietary:       "Vegetarian",
		Accommodation: []string{"Luxury", "Quiet Location"},
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "Plan a 3-day high budget trip to Kyoto.")
	assert.Contains(t, prompt, "Preferred activities: Cultural, Food Tour.")
	assert.Contains(t, prompt, "Walking tolerance: Low.")
	assert.Contains(t, prompt, "Dietary preference: Vegetarian.")
	assert.Contains(t, prompt, "Accommodation: Luxury, Quiet Location.")
}

func TestBuildPrompt_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  TripRequest
	}{
		{name: "missing destination", req: TripRequest{Destination: "   "}},
		{name: "too many days", req: TripRequest{Destination: "Rome", Days: 31}},
		{name: "negative days", req: TripRequest{Destination: "Rome", Days: -2}},
		{name: "unknown budget", req: TripRequest{Destination: "Rome", Budget: "Extreme"}},
		{name: "unknown walking", req: TripRequest{Destination: "Rome", Walking: "none"}},
		{name: "unknown activity", req: TripRequest{Destination: "Rome", Activities: []string{"Skydiving"}}},
		{name: "duplicate activity", req: TripRequest{Destination: "Rome", Activities: []string{"Cultural", "Cultural"}}},
		{name: "unknown dietary", req: TripRequest{Destination: "Rome", Dietary: "Keto"}},
		{name: "unknown accommodation", req: TripRequest{Destination: "Rome", Accommodation: []string{"Castle"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPrompt(tt.req)
			assert.Error(t, err)
		})
	}
}

func TestSuggestionChips(t *testing.T) {
	chips := SuggestionChips()
	require.Len(t, chips, 6)
	assert.Equal(t, "Plan a week in Japan", chips[0])

	chips[0] = "changed"
	assert.Equal(t, "Plan a week in Japan", SuggestionChips()[0])
}

func TestHandler_Prompt(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/planner/prompt", strings.NewReader(`{"destination":"Oslo","days":2,"budget":"Low"}`))
	rr := httptest.NewRecorder()
	h.Prompt(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp PromptResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Prompt, "Plan a 2-day low budget trip to Oslo."))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/planner/prompt", strings.NewReader(`{"days":2}`))
	rr = httptest.NewRecorder()
	h.Prompt(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Suggestions(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rr := httptest.NewRecorder()
	h.Suggestions(rr, httptest.NewRequest(http.MethodGet, "/api/v1/planner/suggestions", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp SuggestionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Suggestions, 6)
	assert.Contains(t, resp.Options.Activities, "Food Tour")
	assert.Equal(t, []string{"high", "moderate", "low"}, resp.Options.Walking)
}
