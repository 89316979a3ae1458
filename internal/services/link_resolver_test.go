package services

import (
	"reflect"
	"testing"

	"tabi/internal/models/trip_models"
)

func TestResolveDestinations(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		rawLink  string
		want     []trip_models.MapDestination
		rule     trip_models.ResolutionRule
	}{
		{
			name:    "empty link",
			rawLink: "",
			want:    []trip_models.MapDestination{},
			rule:    trip_models.RuleNone,
		},
		{
			name:    "only separators",
			rawLink: " ,\n, ",
			want:    []trip_models.MapDestination{},
			rule:    trip_models.RuleNone,
		},
		{
			name:    "url then label pipes",
			rawLink: "a.com|Shop A, b.com|Shop B",
			want: []trip_models.MapDestination{
				{Label: "Shop A", URL: "a.com"},
				{Label: "Shop B", URL: "b.com"},
			},
			rule: trip_models.RuleExplicitLabel,
		},
		{
			name:    "label then url pipes",
			rawLink: "Dotonbori|https://maps.app.goo.gl/d\nGlico Sign|https://maps.app.goo.gl/g",
			want: []trip_models.MapDestination{
				{Label: "Dotonbori", URL: "https://maps.app.goo.gl/d"},
				{Label: "Glico Sign", URL: "https://maps.app.goo.gl/g"},
			},
			rule: trip_models.RuleExplicitLabel,
		},
		{
			name:    "bare segment among piped ones",
			rawLink: "Castle|https://c.example, https://park.example",
			want: []trip_models.MapDestination{
				{Label: "Castle", URL: "https://c.example"},
				{Label: "Location 2", URL: "https://park.example"},
			},
			rule: trip_models.RuleExplicitLabel,
		},
		{
			name:    "pipe with empty side",
			rawLink: "https://x.example|",
			want:    []trip_models.MapDestination{{Label: "Location 1", URL: "https://x.example"}},
			rule:    trip_models.RuleExplicitLabel,
		},
		{
			name:     "positional on slash",
			activity: "Shop A / Shop B",
			rawLink:  "a.com, b.com",
			want: []trip_models.MapDestination{
				{Label: "Shop A", URL: "a.com"},
				{Label: "Shop B", URL: "b.com"},
			},
			rule: trip_models.RulePositional,
		},
		{
			name:     "positional on full-width comma",
			activity: "黑門市場，道頓堀",
			rawLink:  "https://k.example\nhttps://d.example",
			want: []trip_models.MapDestination{
				{Label: "黑門市場", URL: "https://k.example"},
				{Label: "道頓堀", URL: "https://d.example"},
			},
			rule: trip_models.RulePositional,
		},
		{
			name:     "positional on whitespace",
			activity: "Namba Umeda",
			rawLink:  "n.example, u.example",
			want: []trip_models.MapDestination{
				{Label: "Namba", URL: "n.example"},
				{Label: "Umeda", URL: "u.example"},
			},
			rule: trip_models.RulePositional,
		},
		{
			name:     "single segment",
			activity: "Osaka Castle & Park",
			rawLink:  "https://maps.app.goo.gl/castle",
			want:     []trip_models.MapDestination{{Label: "Open Map", URL: "https://maps.app.goo.gl/castle"}},
			rule:     trip_models.RuleFallback,
		},
		{
			name:     "count mismatch",
			activity: "Lunch",
			rawLink:  "a.example, b.example",
			want: []trip_models.MapDestination{
				{Label: "Location 1", URL: "a.example"},
				{Label: "Location 2", URL: "b.example"},
			},
			rule: trip_models.RuleFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := ResolveDestinationsWithRule(tt.activity, tt.rawLink)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("destinations = %+v, want %+v", got, tt.want)
			}
			if rule != tt.rule {
				t.Errorf("rule = %q, want %q", rule, tt.rule)
			}
		})
	}
}

func TestResolveDestinationsIsDeterministic(t *testing.T) {
	a := ResolveDestinations("Shop A / Shop B", "a.com, b.com")
	b := ResolveDestinations("Shop A / Shop B", "a.com, b.com")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same input gave %v and %v", a, b)
	}
}

func TestMapSearchURL(t *testing.T) {
	got := MapSearchURL(" Osaka Castle ")
	want := "https://www.google.com/maps/search/?api=1&query=Osaka+Castle"
	if got != want {
		t.Errorf("MapSearchURL = %q, want %q", got, want)
	}
}
