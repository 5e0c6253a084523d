package analyze

import (
	"encoding/json"
	"strings"

	"tone-palette-server/modules/common/schema"
	"tone-palette-server/modules/common/utils"
)

// rawExcerptLimit - 진단용 원문 발췌 상한 (모델 출력 전문을 그대로 내보내지 않음)
const rawExcerptLimit = 200

// NormalizeAnalysis - 모델 원문 텍스트를 검증된 SkinAnalysis로 변환
// 파싱 + 검증만 수행, 교정/보정/부분 수용 없음
func NormalizeAnalysis(raw string) (*schema.SkinAnalysis, *PipelineError) {
	text := stripCodeFences(strings.TrimSpace(raw))

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &PipelineError{
			Code:    ErrCodeMalformedModelOutput,
			Message: "analysis model returned malformed JSON",
			Details: utils.TruncateString(text, rawExcerptLimit),
			cause:   err,
		}
	}

	analysis, verr := schema.Validate(parsed)
	if verr != nil {
		return nil, &PipelineError{
			Code:    ErrCodeSchemaViolation,
			Message: "analysis model response failed validation",
			Details: utils.TruncateString(verr.Error(), rawExcerptLimit),
			Fields:  verr.Fields,
		}
	}

	return analysis, nil
}

// stripCodeFences - 마크다운 코드펜스 제거 (```json ... ```)
// 필드 교정이 아니라 전송 포장 제거
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// 언어 태그 줄 제거 (```json 등)
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
