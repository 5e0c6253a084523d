package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Undertone 허용값
const (
	UndertoneWarm    = "warm"
	UndertoneCool    = "cool"
	UndertoneNeutral = "neutral"
)

// SeasonalType 허용값
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// ColorRecommendation Category 허용값
const (
	CategoryMakeup      = "makeup"
	CategoryClothing    = "clothing"
	CategoryAccessories = "accessories"
	CategoryHair        = "hair"
)

var (
	validUndertones = map[string]bool{
		UndertoneWarm:    true,
		UndertoneCool:    true,
		UndertoneNeutral: true,
	}

	validSeasons = map[string]bool{
		SeasonSpring: true,
		SeasonSummer: true,
		SeasonAutumn: true,
		SeasonWinter: true,
	}

	validCategories = map[string]bool{
		CategoryMakeup:      true,
		CategoryClothing:    true,
		CategoryAccessories: true,
		CategoryHair:        true,
	}

	hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ColorRecommendation - 컬러 추천 항목
type ColorRecommendation struct {
	Hex         string `json:"hex"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// SkinAnalysis - 피부톤 분석 결과
type SkinAnalysis struct {
	SkinTone             string                `json:"skinTone"`
	Undertone            string                `json:"undertone"`
	SeasonalType         string                `json:"seasonalType,omitempty"`
	Confidence           float64               `json:"confidence"`
	Analysis             string                `json:"analysis"`
	ColorRecommendations []ColorRecommendation `json:"colorRecommendations"`
}

// FieldError - 필드 단위 검증 실패
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError - 모든 필드 위반 사항을 모아서 반환
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add - 위반 사항 추가
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Validate - 임의의 파싱된 JSON 값을 SkinAnalysis로 검증
// 위반된 모든 필드를 모아서 반환 (부분 통과 없음, 교정/보정 없음)
// 알 수 없는 필드는 무시, 필수 필드와 enum은 대소문자까지 정확히 일치해야 함
func Validate(v any) (*SkinAnalysis, *ValidationError) {
	verr := &ValidationError{}

	obj, ok := v.(map[string]any)
	if !ok {
		verr.add("(root)", "expected a JSON object")
		return nil, verr
	}

	out := &SkinAnalysis{}

	out.SkinTone = requireString(obj, "skinTone", verr)

	if raw, present := obj["undertone"]; !present || raw == nil {
		verr.add("undertone", "required field is missing")
	} else if undertone, ok := raw.(string); !ok {
		verr.add("undertone", "must be a string")
	} else if !validUndertones[undertone] {
		verr.add("undertone", fmt.Sprintf("must be one of warm, cool, neutral (got %q)", undertone))
	} else {
		out.Undertone = undertone
	}

	// seasonalType은 선택 필드 - 있으면 enum과 정확히 일치해야 함
	if raw, present := obj["seasonalType"]; present && raw != nil {
		season, ok := raw.(string)
		if !ok {
			verr.add("seasonalType", "must be a string")
		} else if !validSeasons[season] {
			verr.add("seasonalType", fmt.Sprintf("must be one of spring, summer, autumn, winter (got %q)", season))
		} else {
			out.SeasonalType = season
		}
	}

	if raw, present := obj["confidence"]; !present {
		verr.add("confidence", "required field is missing")
	} else if conf, ok := toNumber(raw); !ok {
		verr.add("confidence", "must be a number")
	} else if conf < 0 || conf > 1 {
		// 범위 밖은 실패 - 클램핑하지 않음
		verr.add("confidence", fmt.Sprintf("must be between 0 and 1 (got %v)", conf))
	} else {
		out.Confidence = conf
	}

	out.Analysis = requireString(obj, "analysis", verr)

	out.ColorRecommendations = validateRecommendations(obj, verr)

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

// validateRecommendations - colorRecommendations 배열 검증
func validateRecommendations(obj map[string]any, verr *ValidationError) []ColorRecommendation {
	raw, present := obj["colorRecommendations"]
	if !present || raw == nil {
		verr.add("colorRecommendations", "required field is missing")
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		verr.add("colorRecommendations", "must be an array")
		return nil
	}
	if len(items) == 0 {
		verr.add("colorRecommendations", "must not be empty")
		return nil
	}

	recs := make([]ColorRecommendation, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("colorRecommendations[%d]", i)

		rec, ok := item.(map[string]any)
		if !ok {
			verr.add(field, "expected a JSON object")
			continue
		}

		var out ColorRecommendation

		if hex, ok := rec["hex"].(string); !ok {
			verr.add(field+".hex", "required field is missing or not a string")
		} else if !hexPattern.MatchString(hex) {
			verr.add(field+".hex", fmt.Sprintf("must match #RRGGBB (got %q)", hex))
		} else {
			out.Hex = hex
		}

		if name, ok := rec["name"].(string); !ok || name == "" {
			verr.add(field+".name", "must be a non-empty string")
		} else {
			out.Name = name
		}

		if category, ok := rec["category"].(string); !ok {
			verr.add(field+".category", "required field is missing or not a string")
		} else if !validCategories[category] {
			verr.add(field+".category", fmt.Sprintf("must be one of makeup, clothing, accessories, hair (got %q)", category))
		} else {
			out.Category = category
		}

		// description은 선택 필드
		if raw, present := rec["description"]; present && raw != nil {
			if description, ok := raw.(string); !ok {
				verr.add(field+".description", "must be a string")
			} else {
				out.Description = description
			}
		}

		recs = append(recs, out)
	}

	return recs
}

// requireString - 필수 문자열 필드 검증
func requireString(obj map[string]any, field string, verr *ValidationError) string {
	raw, present := obj[field]
	if !present || raw == nil {
		verr.add(field, "required field is missing")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		verr.add(field, "must be a string")
		return ""
	}
	return s
}

// toNumber - JSON 숫자 변환 (encoding/json은 float64, Go 코드에서 만든 맵은 int도 허용)
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
