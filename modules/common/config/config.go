package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTimeoutSeconds int

	// Server
	Port string

	// Analyze
	MaxConcurrentAnalyses int
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Gemini 타임아웃 파싱
	timeoutSeconds := 60 // 기본값
	if timeoutStr := os.Getenv("GEMINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if parsed, err := strconv.Atoi(timeoutStr); err == nil && parsed > 0 {
			timeoutSeconds = parsed
		}
	}

	// 동시 분석 제한 파싱 (0이면 제한 없음)
	maxConcurrent := 8 // 기본값
	if concStr := os.Getenv("MAX_CONCURRENT_ANALYSES"); concStr != "" {
		if parsed, err := strconv.Atoi(concStr); err == nil && parsed >= 0 {
			maxConcurrent = parsed
		}
	}

	globalConfig = &Config{
		// Gemini API
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GeminiTimeoutSeconds: timeoutSeconds,

		// Server
		Port: getEnv("PORT", "8080"),

		// Analyze
		MaxConcurrentAnalyses: maxConcurrent,
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: %s (timeout: %ds)", globalConfig.GeminiModel, globalConfig.GeminiTimeoutSeconds)
	log.Printf("   Max concurrent analyses: %d", globalConfig.MaxConcurrentAnalyses)

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
