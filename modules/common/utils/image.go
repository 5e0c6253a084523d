package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ConvertImageToBase64 - 이미지 바이너리를 base64로 변환
func ConvertImageToBase64(imageData []byte) string {
	return base64.StdEncoding.EncodeToString(imageData)
}

// DecodeBase64Image - Base64 이미지 디코딩 (data:image/xxx;base64, prefix 허용)
func DecodeBase64Image(imgBase64 string) ([]byte, error) {
	base64Data := imgBase64

	// data:image/xxx;base64, prefix 제거
	if idx := strings.Index(imgBase64, ";base64,"); idx >= 0 {
		base64Data = imgBase64[idx+len(";base64,"):]
	}

	imageData, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	return imageData, nil
}

// TruncateString - 로그용 문자열 자르기
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
