// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce relationship rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// Free-text field length limits, matching the column constraints.
const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
	maxDestinationLen = 255
	maxLocationLen    = 255
	maxNameLen        = 100
	maxIconLen        = 50
)

var (
	htmlTagRe  = regexp.MustCompile(`<[^>]*>`)
	ctrlCharRe = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// sanitizeText strips HTML markup and control characters from free-text input
// and trims surrounding whitespace. Entities are unescaped first so encoded
// markup does not survive the tag strip.
func sanitizeText(s string) string {
	s = html.UnescapeString(s)
	s = htmlTagRe.ReplaceAllString(s, "")
	s = ctrlCharRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// sanitizeRequired sanitizes a required field, rejecting values that are
// empty after sanitization or longer than max.
func sanitizeRequired(field, value string, max int) (string, error) {
	v := sanitizeText(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", domain.ErrValidation, field)
	}
	if len(v) > max {
		return "", fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, max)
	}
	return v, nil
}

// sanitizeOptional sanitizes an optional field; empty results are allowed.
func sanitizeOptional(field, value string, max int) (string, error) {
	v := sanitizeText(value)
	if len(v) > max {
		return "", fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, max)
	}
	return v, nil
}

// validHexColor reports whether color is a #RRGGBB hex string.
func validHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}
