package usecase

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/veggiekiosk/backend/internal/domain"
)

// firstNumberRegex extracts the leading numeric token from a free-text weight
// like "approximately 750 grams".
var firstNumberRegex = regexp.MustCompile(`-?\d+(\.\d+)?`)

// flexString tolerates the model emitting a JSON number where a string was
// asked for (and vice versa).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.Trim(string(data), `"`))
	return nil
}

// detectionJSON mirrors the field names the instructional prompt asks for.
type detectionJSON struct {
	VegetableName    flexString `json:"vegetable_name"`
	Confidence       flexString `json:"confidence"`
	Description      flexString `json:"description"`
	EstimatedWeight  flexString `json:"estimated_weight"`
	WeightConfidence flexString `json:"weight_confidence"`
	NutritionalInfo  flexString `json:"nutritional_info"`
	StorageTips      flexString `json:"storage_tips"`
}

// ExtractJSONObject returns the first well-formed-looking JSON object
// substring of text: everything from the first '{' to the last '}'. Model
// output routinely wraps the object in prose or a markdown code fence.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseDetection parses raw model output into a RawDetection. The boolean is
// false when no JSON object could be extracted or it failed to parse; callers
// degrade to a textual result rather than failing the scan.
func ParseDetection(text string) (*domain.RawDetection, bool) {
	object, ok := ExtractJSONObject(text)
	if !ok {
		return nil, false
	}

	var parsed detectionJSON
	if err := json.Unmarshal([]byte(object), &parsed); err != nil {
		return nil, false
	}

	return &domain.RawDetection{
		VegetableName:      strings.TrimSpace(string(parsed.VegetableName)),
		ConfidencePercent:  parseConfidencePercent(string(parsed.Confidence)),
		EstimatedWeightRaw: strings.TrimSpace(string(parsed.EstimatedWeight)),
		WeightConfidence:   strings.TrimSpace(string(parsed.WeightConfidence)),
		Description:        strings.TrimSpace(string(parsed.Description)),
		NutritionalInfo:    strings.TrimSpace(string(parsed.NutritionalInfo)),
		StorageTips:        strings.TrimSpace(string(parsed.StorageTips)),
	}, true
}

// ParseWeightGrams pulls a weight in grams out of the detection's free-text
// weight field. Non-numeric garbage yields 0.
func ParseWeightGrams(raw string) float64 {
	token := firstNumberRegex.FindString(raw)
	if token == "" {
		return 0
	}
	weight, err := strconv.ParseFloat(token, 64)
	if err != nil || weight < 0 {
		return 0
	}
	return weight
}

// parseConfidencePercent clamps the model-provided confidence to 0-100.
func parseConfidencePercent(raw string) int {
	token := firstNumberRegex.FindString(raw)
	if token == "" {
		return 0
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	switch {
	case value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return int(value)
	}
}
