package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProfileStats holds the network counts found in the profile text. Nil means
// the count was not present or could not be parsed.
type ProfileStats struct {
	Connections *int `json:"connections"`
	Followers   *int `json:"followers"`
}

type ReviewRequest struct {
	Text       string
	TargetRole string
	Stats      ProfileStats
}

// Upload is the raw file received at the boundary.
type Upload struct {
	Filename string
	Data     []byte
}

type Suggestion struct {
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

type ExperienceTip struct {
	Role string `json:"role"`
	Tips string `json:"tips"`
}

type Skills struct {
	Missing StringList `json:"missing"`
	Notes   string     `json:"notes"`
}

// Review is the normalized model reply. Keys outside these fields are dropped.
type Review struct {
	Score       int             `json:"score"`
	Connections *int            `json:"connections"`
	Followers   *int            `json:"followers"`
	Headline    Suggestion      `json:"headline"`
	About       Suggestion      `json:"about"`
	Experience  []ExperienceTip `json:"experience"`
	Skills      Skills          `json:"skills"`
	Keywords    StringList      `json:"keywords"`
	Summary     string          `json:"summary"`
	FullName    *string         `json:"full_name"`
}

type reviewWire struct {
	Score       json.RawMessage `json:"score"`
	Connections json.RawMessage `json:"connections"`
	Followers   json.RawMessage `json:"followers"`
	Headline    Suggestion      `json:"headline"`
	About       Suggestion      `json:"about"`
	Experience  []ExperienceTip `json:"experience"`
	Skills      Skills          `json:"skills"`
	Keywords    StringList      `json:"keywords"`
	Summary     string          `json:"summary"`
	FullName    *string         `json:"full_name"`
}

func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	score, err := decodeScore(w.Score)
	if err != nil {
		return err
	}

	*r = Review{
		Score:       score,
		Connections: decodeCount(w.Connections),
		Followers:   decodeCount(w.Followers),
		Headline:    w.Headline,
		About:       w.About,
		Experience:  w.Experience,
		Skills:      w.Skills,
		Keywords:    w.Keywords,
		Summary:     w.Summary,
		FullName:    w.FullName,
	}
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		r.FullName = nil
	}
	if r.Experience == nil {
		r.Experience = []ExperienceTip{}
	}
	if r.Keywords == nil {
		r.Keywords = StringList{}
	}
	if r.Skills.Missing == nil {
		r.Skills.Missing = StringList{}
	}
	return nil
}

// Backfill fills counts the model left empty with the parsed stats.
func (r *Review) Backfill(stats ProfileStats) {
	if r.Connections == nil {
		r.Connections = stats.Connections
	}
	if r.Followers == nil {
		r.Followers = stats.Followers
	}
}

// StringList decodes either a JSON string or an array of strings and always
// encodes as an array.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = StringList{}
		return nil
	}

	switch data[0] {
	case '"':
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		one = strings.TrimSpace(one)
		if one == "" {
			*s = StringList{}
			return nil
		}
		*s = StringList{one}
		return nil
	case '[':
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return fmt.Errorf("expected an array of strings: %w", err)
		}
		out := make(StringList, 0, len(many))
		for _, item := range many {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("expected string or array of strings, got %s", string(data))
	}
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func decodeScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("score is missing")
	}
	if string(raw) == "null" {
		return 0, errors.New("score is null")
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("score must be a number, got %s", string(raw))
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("score must be a number, got %q", s)
		}
		f = parsed
	}

	score := int(math.Round(f))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// decodeCount accepts a number or a numeric string such as "500+" or "1,234".
func decodeCount(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 || f > math.MaxInt32 {
			return nil
		}
		n := int(f)
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSuffix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "+")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
