package analyze

import (
	"net/http"

	"tone-palette-server/modules/common/schema"
	"tone-palette-server/modules/common/utils"
)

// Error codes
const (
	ErrCodeMissingInput         = "MISSING_INPUT"
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeModelUnavailable     = "MODEL_UNAVAILABLE"
	ErrCodeEmptyModelResponse   = "EMPTY_MODEL_RESPONSE"
	ErrCodeMalformedModelOutput = "MALFORMED_MODEL_OUTPUT"
	ErrCodeSchemaViolation      = "SCHEMA_VIOLATION"
	ErrCodeOverloaded           = "OVERLOADED"
)

// PipelineError - 파이프라인 단계별 실패 (요청 단위로 종료, 핸들러에서 HTTP로 매핑)
type PipelineError struct {
	Code    string
	Message string
	Details string

	// Timeout - 모델 호출 타임아웃 여부 (502 대신 504)
	Timeout bool

	// Fields - 스키마 위반 시 필드별 상세 (서버 로그용)
	Fields []schema.FieldError

	cause error
}

func (e *PipelineError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.cause
}

// HTTPStatus - 에러 코드를 HTTP 상태 코드로 매핑
func (e *PipelineError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeMissingInput, ErrCodeUnsupportedMediaType, ErrCodePayloadTooLarge:
		return http.StatusBadRequest
	case ErrCodeOverloaded:
		return http.StatusServiceUnavailable
	case ErrCodeModelUnavailable:
		if e.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		// EMPTY_MODEL_RESPONSE, MALFORMED_MODEL_OUTPUT, SCHEMA_VIOLATION
		return http.StatusBadGateway
	}
}

// ErrorResponse - 에러 응답 바디
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// UploadedImage - 업로드 게이트를 통과한 이미지 (요청 수명 동안만 유지)
type UploadedImage struct {
	Data     []byte
	MIMEType string
}

// EncodedImage - 모델 전송용 base64 인코딩 이미지
type EncodedImage struct {
	Data     string
	MIMEType string
}

// Base64AnalyzeRequest - JSON 바디 분석 요청 (imageData는 base64, data URL prefix 허용)
type Base64AnalyzeRequest struct {
	ImageData string `json:"imageData"`
	MIMEType  string `json:"mimeType"`
}

// EncodeImage - 업로드된 이미지를 모델 전송용 base64로 변환
func EncodeImage(img *UploadedImage) (*EncodedImage, *PipelineError) {
	if img == nil || len(img.Data) == 0 {
		return nil, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "no image data to encode",
		}
	}
	return &EncodedImage{
		Data:     utils.ConvertImageToBase64(img.Data),
		MIMEType: img.MIMEType,
	}, nil
}
