package photo

import (
	"strings"

	"autoClaims/internal/domain"
)

var instructions = map[domain.Angle][]string{
	domain.AngleFront: {
		"Position the entire front of the vehicle in frame",
		"Include the license plate clearly",
		"Show all visible damage to front bumper and hood",
		"Ensure good lighting - avoid shadows",
	},
	domain.AngleRear: {
		"Position the entire rear of the vehicle in frame",
		"Include the license plate clearly",
		"Show all visible damage to rear bumper and trunk",
		"Capture from a slight angle to show depth",
	},
	domain.AngleLeft: {
		"Capture the full driver side of the vehicle",
		"Include from front wheel to rear wheel",
		"Show all doors and any side damage",
		"Stand back to get the complete side view",
	},
	domain.AngleRight: {
		"Capture the full passenger side of the vehicle",
		"Include from front wheel to rear wheel",
		"Show all doors and any side damage",
		"Stand back to get the complete side view",
	},
}

// Instructions returns a copy of the framing tips for angle.
func Instructions(a domain.Angle) []string {
	return append([]string(nil), instructions[a]...)
}

func AngleName(a domain.Angle) string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
