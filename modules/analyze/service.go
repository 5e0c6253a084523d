package analyze

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"tone-palette-server/modules/common/config"
	"tone-palette-server/modules/common/utils"
)

// Invoker - 외부 모델 호출 추상화 (테스트에서 교체)
type Invoker interface {
	AnalyzeImage(ctx context.Context, image *EncodedImage) (string, *PipelineError)
}

// Service - Gemini 기반 분석 호출자
type Service struct {
	genaiClient *genai.Client
	model       string
	timeout     time.Duration
}

// NewService - Genai 클라이언트 초기화 (프로세스당 1회)
func NewService(ctx context.Context) (*Service, error) {
	cfg := config.GetConfig()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genai client: %w", err)
	}

	log.Println("✅ [Analyze] Service initialized")
	return &Service{
		genaiClient: genaiClient,
		model:       cfg.GeminiModel,
		timeout:     time.Duration(cfg.GeminiTimeoutSeconds) * time.Second,
	}, nil
}

// AnalyzeImage - 인코딩된 이미지로 모델을 1회 호출하고 원문 텍스트 반환
// 재시도는 여기서 하지 않음 (핸들러 소관)
func (s *Service) AnalyzeImage(ctx context.Context, image *EncodedImage) (string, *PipelineError) {
	if image == nil || image.Data == "" {
		return "", &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "no image data to analyze",
		}
	}

	// SDK는 raw 바이트를 받으므로 전송 인코딩을 되돌림
	imageData, err := utils.DecodeBase64Image(image.Data)
	if err != nil {
		return "", &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "invalid image payload",
			cause:   err,
		}
	}

	// 응답 없는 업스트림이 요청을 무한정 붙잡지 못하게 상한 적용
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content := &genai.Content{
		Parts: []*genai.Part{
			{
				InlineData: &genai.Blob{
					MIMEType: image.MIMEType,
					Data:     imageData,
				},
			},
			genai.NewPartFromText(BuildAnalysisPrompt()),
		},
	}

	log.Printf("📤 [Analyze] Calling Gemini API (%s, %s, %d bytes)", s.model, image.MIMEType, len(imageData))
	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		s.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      floatPtr(0.2), // 분석은 일관성 있게
		},
	)
	if err != nil {
		isTimeout := errors.Is(err, context.DeadlineExceeded)
		log.Printf("❌ [Analyze] Gemini API error (timeout=%v): %v", isTimeout, err)
		return "", &PipelineError{
			Code:    ErrCodeModelUnavailable,
			Message: "analysis model is unavailable",
			Timeout: isTimeout,
			cause:   err,
		}
	}

	// 응답에서 텍스트 추출
	var rawText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				rawText = part.Text
				break
			}
		}
		if rawText != "" {
			break
		}
	}

	if rawText == "" {
		log.Printf("⚠️ [Analyze] Empty response from model")
		return "", &PipelineError{
			Code:    ErrCodeEmptyModelResponse,
			Message: "analysis model returned an empty response",
		}
	}

	log.Printf("✅ [Analyze] Model response received: %s", utils.TruncateString(rawText, 200))
	return rawText, nil
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
