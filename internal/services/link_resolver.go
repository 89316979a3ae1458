package services

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"tabi/internal/models/trip_models"
)

const (
	singleDestinationLabel = "Open Map"
	mapSearchBaseURL       = "https://www.google.com/maps/search/?api=1&query="
)

// ResolveDestinations turns an entry's link field into map targets.
// See ResolveDestinationsWithRule for the resolution order.
func ResolveDestinations(activity, rawLink string) []trip_models.MapDestination {
	dests, _ := ResolveDestinationsWithRule(activity, rawLink)
	return dests
}

// ResolveDestinationsWithRule applies, in order:
//
//  1. explicit labels: any segment holds a pipe, so every segment is read as label|url
//  2. positional: more than one segment and exactly as many activity parts, paired by index
//  3. fallback: "Open Map" for a single segment, "Location n" otherwise
//
// An empty link yields no destinations; MapSearchURL is the caller's fallback then.
func ResolveDestinationsWithRule(activity, rawLink string) ([]trip_models.MapDestination, trip_models.ResolutionRule) {
	segments := splitLinkSegments(rawLink)
	if len(segments) == 0 {
		return []trip_models.MapDestination{}, trip_models.RuleNone
	}

	if hasPipe(segments) {
		dests := make([]trip_models.MapDestination, 0, len(segments))
		for i, seg := range segments {
			dests = append(dests, parseLabeledSegment(seg, i))
		}
		return dests, trip_models.RuleExplicitLabel
	}

	if len(segments) > 1 {
		if parts := splitActivityParts(activity, len(segments)); parts != nil {
			dests := make([]trip_models.MapDestination, 0, len(segments))
			for i, seg := range segments {
				dests = append(dests, trip_models.MapDestination{Label: parts[i], URL: seg})
			}
			return dests, trip_models.RulePositional
		}
	}

	dests := make([]trip_models.MapDestination, 0, len(segments))
	for i, seg := range segments {
		label := singleDestinationLabel
		if len(segments) > 1 {
			label = locationLabel(i)
		}
		dests = append(dests, trip_models.MapDestination{Label: label, URL: seg})
	}
	return dests, trip_models.RuleFallback
}

// MapSearchURL is a text search for the activity name.
func MapSearchURL(activity string) string {
	return mapSearchBaseURL + url.QueryEscape(strings.TrimSpace(activity))
}

func splitLinkSegments(rawLink string) []string {
	fields := strings.FieldsFunc(rawLink, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	segments := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			segments = append(segments, f)
		}
	}
	return segments
}

func hasPipe(segments []string) bool {
	for _, seg := range segments {
		if strings.Contains(seg, "|") {
			return true
		}
	}
	return false
}

// parseLabeledSegment reads "label|url". Sheets also carry "url|label", so the
// sides swap when only the left one looks like a link.
func parseLabeledSegment(seg string, index int) trip_models.MapDestination {
	parts := strings.Split(seg, "|")
	if len(parts) == 1 {
		return trip_models.MapDestination{Label: locationLabel(index), URL: strings.TrimSpace(seg)}
	}

	label, link := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if looksLikeURL(label) && !looksLikeURL(link) {
		label, link = link, label
	}
	switch {
	case link == "":
		return trip_models.MapDestination{Label: locationLabel(index), URL: label}
	case label == "":
		return trip_models.MapDestination{Label: locationLabel(index), URL: link}
	}
	return trip_models.MapDestination{Label: label, URL: link}
}

func looksLikeURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "://") {
		return true
	}
	return strings.Contains(s, ".") && !strings.ContainsFunc(s, unicode.IsSpace)
}

func isStrongActivitySeparator(r rune) bool {
	switch r {
	case ',', '&', '+', '/', '、', '，':
		return true
	}
	return false
}

// splitActivityParts returns want activity parts or nil. Strong separators are
// tried first; whitespace only splits when they alone do not produce want parts.
func splitActivityParts(activity string, want int) []string {
	strong := nonEmptyFields(activity, isStrongActivitySeparator)
	if len(strong) == want {
		return strong
	}
	all := nonEmptyFields(activity, func(r rune) bool {
		return isStrongActivitySeparator(r) || unicode.IsSpace(r)
	})
	if len(all) == want {
		return all
	}
	return nil
}

func nonEmptyFields(s string, sep func(rune) bool) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, sep) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func locationLabel(index int) string {
	return fmt.Sprintf("Location %d", index+1)
}
