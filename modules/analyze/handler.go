package analyze

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tone-palette-server/modules/common/config"
	"tone-palette-server/modules/common/schema"
	"tone-palette-server/modules/common/utils"
)

type Handler struct {
	invoker Invoker

	// sem - 동시 분석 제한용 세마포어 (nil이면 제한 없음)
	// 가득 차면 대기 없이 Overloaded로 거절
	sem chan struct{}
}

func NewHandler(invoker Invoker) *Handler {
	cfg := config.GetConfig()

	var sem chan struct{}
	if cfg.MaxConcurrentAnalyses > 0 {
		sem = make(chan struct{}, cfg.MaxConcurrentAnalyses)
	}

	return &Handler{
		invoker: invoker,
		sem:     sem,
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/analyze-skin", h.HandleAnalyzeSkin).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/analyze-skin-base64", h.HandleAnalyzeSkinBase64).Methods("POST", "OPTIONS")
	log.Println("✅ Analyze routes registered")
}

// HandleAnalyzeSkin - POST /api/analyze-skin
// multipart 업로드 → 인코딩 → 모델 호출 → 정규화 순서로 처리
func (h *Handler) HandleAnalyzeSkin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	release, perr := h.acquire()
	if perr != nil {
		h.writeError(w, perr)
		return
	}
	defer release()

	img, perr := ExtractUploadedImage(w, r)
	if perr != nil {
		h.writeError(w, perr)
		return
	}

	log.Printf("🔄 [Analyze] Processing upload: %s, %d bytes", img.MIMEType, len(img.Data))
	h.analyze(r.Context(), w, img)
}

// HandleAnalyzeSkinBase64 - POST /api/analyze-skin-base64
// {"imageData": base64, "mimeType": ...} JSON 바디 처리 (data URL prefix 허용)
func (h *Handler) HandleAnalyzeSkinBase64(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	release, perr := h.acquire()
	if perr != nil {
		h.writeError(w, perr)
		return
	}
	defer release()

	var req Base64AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "invalid JSON body",
		})
		return
	}

	if strings.TrimSpace(req.ImageData) == "" {
		h.writeError(w, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "imageData is required",
		})
		return
	}

	mimeType := parseMediaType(req.MIMEType)
	if !supportedMediaTypes[mimeType] {
		h.writeError(w, &PipelineError{
			Code:    ErrCodeUnsupportedMediaType,
			Message: "unsupported image type \"" + mimeType + "\" (supported: image/jpeg, image/png, image/webp)",
		})
		return
	}

	data, err := utils.DecodeBase64Image(req.ImageData)
	if err != nil {
		h.writeError(w, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "imageData is not valid base64",
			cause:   err,
		})
		return
	}
	if len(data) == 0 {
		h.writeError(w, &PipelineError{
			Code:    ErrCodeMissingInput,
			Message: "imageData is empty",
		})
		return
	}
	if len(data) > MaxUploadBytes {
		h.writeError(w, &PipelineError{
			Code:    ErrCodePayloadTooLarge,
			Message: "image size too large (max 10 MiB)",
		})
		return
	}

	log.Printf("🔄 [Analyze] Processing base64 payload: %s, %d bytes", mimeType, len(data))
	h.analyze(r.Context(), w, &UploadedImage{Data: data, MIMEType: mimeType})
}

// analyze - 게이트 통과 이후 공통 파이프라인 (인코딩 → 호출 → 정규화)
func (h *Handler) analyze(ctx context.Context, w http.ResponseWriter, img *UploadedImage) {
	encoded, perr := EncodeImage(img)
	if perr != nil {
		h.writeError(w, perr)
		return
	}

	analysis, perr := h.runModel(ctx, encoded)
	if perr != nil {
		h.writeError(w, perr)
		return
	}

	log.Printf("✅ [Analyze] Analysis complete: undertone=%s, confidence=%.2f, recommendations=%d",
		analysis.Undertone, analysis.Confidence, len(analysis.ColorRecommendations))
	json.NewEncoder(w).Encode(analysis)
}

// runModel - 모델 호출 + 정규화
// 재시도는 ModelUnavailable에 한해 1회 - 같은 프롬프트로는 스키마 위반이
// 스스로 고쳐질 리 없으므로 SchemaViolation 등은 재시도하지 않음
func (h *Handler) runModel(ctx context.Context, encoded *EncodedImage) (*schema.SkinAnalysis, *PipelineError) {
	raw, perr := h.invoker.AnalyzeImage(ctx, encoded)
	if perr != nil && perr.Code == ErrCodeModelUnavailable && ctx.Err() == nil {
		log.Printf("🔄 [Analyze] Model unavailable, retrying once")
		raw, perr = h.invoker.AnalyzeImage(ctx, encoded)
	}
	if perr != nil {
		return nil, perr
	}

	return NormalizeAnalysis(raw)
}

// acquire - 세마포어 획득 (대기하지 않음)
func (h *Handler) acquire() (func(), *PipelineError) {
	if h.sem == nil {
		return func() {}, nil
	}
	select {
	case h.sem <- struct{}{}:
		return func() { <-h.sem }, nil
	default:
		return nil, &PipelineError{
			Code:    ErrCodeOverloaded,
			Message: "too many concurrent analyses, try again later",
		}
	}
}

// writeError - 에러 응답 전송
func (h *Handler) writeError(w http.ResponseWriter, perr *PipelineError) {
	status := perr.HTTPStatus()
	log.Printf("❌ [Analyze] %s (%d): %v", perr.Code, status, perr)
	for _, f := range perr.Fields {
		log.Printf("   ⚠️ %s: %s", f.Field, f.Message)
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   perr.Message,
		Details: perr.Details,
	})
}
