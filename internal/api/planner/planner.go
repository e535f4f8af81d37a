// Package planner turns trip preferences into a chat prompt.
package planner

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Riyasinha-01/Voyage/internal/api"
)

var (
	Activities    = []string{"Cultural", "Adventure", "Relaxation", "Food Tour", "Nightlife"}
	Dietary       = []string{"No Preference", "Vegetarian", "Non-Vegetarian"}
	Accommodation = []string{"Budget", "Mid-range", "Luxury", "Near City Center", "Quiet Location"}
	Walking       = []string{"high", "moderate", "low"}
	Budgets       = []string{"Low", "Medium", "High"}
)

// suggestionChips are offered on an empty chat.
var suggestionChips = []string{
	"Plan a week in Japan",
	"Hidden gems in Italy",
	"Budget trip to Southeast Asia",
	"Family-friendly Europe",
	"Solo travel tips",
	"Romantic getaway ideas",
}

// TripRequest holds the trip planner form. Zero values take the form
// defaults.
type TripRequest struct {
	Destination   string   `json:"destination" validate:"required,max=120" example:"Lisbon"`
	Days          int      `json:"days" validate:"min=1,max=30" example:"5"`
	Budget        string   `json:"budget" validate:"oneof=Low Medium High" example:"Medium"`
	Activities    []string `json:"activities,omitempty" validate:"omitempty,unique,dive,oneof=Cultural Adventure Relaxation 'Food Tour' Nightlife"`
	Walking       string   `json:"walking" validate:"oneof=high moderate low" example:"moderate"`
	Dietary       string   `json:"dietary" validate:"oneof='No Preference' Vegetarian Non-Vegetarian" example:"No Preference"`
	Accommodation []string `json:"accommodation,omitempty" validate:"omitempty,unique,dive,oneof=Budget Mid-range Luxury 'Near City Center' 'Quiet Location'"`
}

// WithDefaults fills unset fields with the form defaults.
func (t TripRequest) WithDefaults() TripRequest {
	t.Destination = strings.TrimSpace(t.Destination)
	if t.Days == 0 {
		t.Days = 5
	}
	if t.Budget == "" {
		t.Budget = "Medium"
	}
	if t.Walking == "" {
		t.Walking = "moderate"
	}
	if t.Dietary == "" {
		t.Dietary = "No Preference"
	}
	return t
}

// BuildPrompt validates the request and renders the planning prompt.
func BuildPrompt(req TripRequest) (string, error) {
	req = req.WithDefaults()
	if err := api.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("invalid trip request: %w", err)
	}

	acts := "general sightseeing"
	if len(req.Activities) > 0 {
		acts = strings.Join(req.Activities, ", ")
	}
	acc := "any accommodation"
	if len(req.Accommodation) > 0 {
		acc = strings.Join(req.Accommodation, ", ")
	}

	return fmt.Sprintf(
		"Plan a %d-day %s budget trip to %s. Preferred activities: %s. Walking tolerance: %s. "+
			"Dietary preference: %s. Accommodation: %s. Give a detailed day-by-day itinerary with recommendations.",
		req.Days,
		cases.Lower(language.English).String(req.Budget),
		req.Destination,
		acts,
		cases.Title(language.English).String(req.Walking),
		req.Dietary,
		acc,
	), nil
}

// FormOptions lists the accepted values of each choice field.
type FormOptions struct {
	Budgets       []string `json:"budgets"`
	Activities    []string `json:"activities"`
	Walking       []string `json:"walking"`
	Dietary       []string `json:"dietary"`
	Accommodation []string `json:"accommodation"`
}

func Options() FormOptions {
	return FormOptions{
		Budgets:       append([]string(nil), Budgets...),
		Activities:    append([]string(nil), Activities...),
		Walking:       append([]string(nil), Walking...),
		Dietary:       append([]string(nil), Dietary...),
		Accommodation: append([]string(nil), Accommodation...),
	}
}

// SuggestionChips returns the starter prompts for an empty conversation.
func SuggestionChips() []string {
	return append([]string(nil), suggestionChips...)
}
