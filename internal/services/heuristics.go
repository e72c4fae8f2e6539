package services

import (
	"regexp"
	"strconv"
	"strings"

	"linkedin-reviewer/internal/models"
)

const minProfileWords = 80

var profileMarkers = []string{
	"linkedin profile",
	"linkedin.com/in/",
	"experience",
	"about",
	"recommendations",
	"skills",
	"accomplishments",
}

// The gap between number and label may span newlines; exported PDFs often
// reflow "500+" and "connections" onto separate lines.
var (
	connectionsPattern = regexp.MustCompile(`(?is)(\d[\d,]*\+?).{0,8}connections?`)
	followersPattern   = regexp.MustCompile(`(?is)(\d[\d,]*\+?).{0,8}followers?`)
)

// IsLikelyProfile reports whether text looks like a LinkedIn PDF export: at
// least two distinct section markers and a minimum amount of text.
func IsLikelyProfile(text string) bool {
	lower := strings.ToLower(text)

	hits := 0
	for _, marker := range profileMarkers {
		if strings.Contains(lower, marker) {
			hits++
		}
	}

	return hits >= 2 && len(strings.Fields(text)) >= minProfileWords
}

// ParseStats looks for approximate connection and follower counts. Each count
// is parsed independently; a failure leaves only that field nil.
func ParseStats(text string) models.ProfileStats {
	return models.ProfileStats{
		Connections: findCount(connectionsPattern, text),
		Followers:   findCount(followersPattern, text),
	}
}

func findCount(pattern *regexp.Regexp, text string) *int {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	return parseCount(match[1])
}

func parseCount(raw string) *int {
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSuffix(raw, "+")

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
