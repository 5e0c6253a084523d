package analyze

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// PhotoFieldName - multipart 파일 필드 이름
	PhotoFieldName = "photo"

	// MaxUploadBytes - 업로드 최대 크기 (10 MiB)
	MaxUploadBytes = 10 << 20

	// multipart 바운더리/헤더 여유분
	multipartOverhead = 1 << 20
)

// 허용 media type 화이트리스트
var supportedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ExtractUploadedImage - 업로드 게이트
// 비싼 작업 전에 media type 화이트리스트와 최대 크기를 강제
// 파일이 여러 개면 첫 번째만 사용, 디스크 기록 없음 (메모리에만 유지)
func ExtractUploadedImage(w http.ResponseWriter, r *http.Request) (*UploadedImage, *PipelineError) {
	// 선언된 크기 기준으로 전체 버퍼링 전에 차단
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+multipartOverhead)

	// maxMemory를 상한보다 크게 잡아 임시 파일로 흘러가지 않게 함
	if err := r.ParseMultipartForm(MaxUploadBytes + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &PipelineError{
				Code:    ErrCodePayloadTooLarge,
				Message: fmt.Sprintf("file size too large (max %d MiB)", MaxUploadBytes>>20),
			}
		}
		return nil, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "invalid multipart body",
			cause:   err,
		}
	}

	// FormFile은 같은 필드의 첫 번째 파트를 반환 - 결정적
	file, header, err := r.FormFile(PhotoFieldName)
	if err != nil {
		return nil, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: fmt.Sprintf("no photo uploaded (form field %q)", PhotoFieldName),
		}
	}
	defer file.Close()

	// media type 검사 (크기보다 먼저 - 타입 위반은 크기와 무관하게 거절)
	mimeType := parseMediaType(header.Header.Get("Content-Type"))
	if !supportedMediaTypes[mimeType] {
		return nil, &PipelineError{
			Code:    ErrCodeUnsupportedMediaType,
			Message: fmt.Sprintf("unsupported image type %q (supported: image/jpeg, image/png, image/webp)", mimeType),
		}
	}

	// 선언된 크기 검사
	if header.Size > MaxUploadBytes {
		return nil, &PipelineError{
			Code:    ErrCodePayloadTooLarge,
			Message: fmt.Sprintf("file size too large (max %d MiB)", MaxUploadBytes>>20),
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "failed to read uploaded file",
			cause:   err,
		}
	}

	// 버퍼링 후에도 상한을 하드캡으로 유지
	if len(data) > MaxUploadBytes {
		return nil, &PipelineError{
			Code:    ErrCodePayloadTooLarge,
			Message: fmt.Sprintf("file size too large (max %d MiB)", MaxUploadBytes>>20),
		}
	}
	if len(data) == 0 {
		return nil, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "uploaded file is empty",
		}
	}

	return &UploadedImage{Data: data, MIMEType: mimeType}, nil
}

// parseMediaType - Content-Type 파라미터 제거 ("image/jpeg; charset=..." → "image/jpeg")
func parseMediaType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}
