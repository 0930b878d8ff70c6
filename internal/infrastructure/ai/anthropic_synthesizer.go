package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"recommender/internal/domain/recommendation"
)

// reportSystemPrompt системный промпт генерации отчета.
// Структура отчета повторяет формат, который ждут команды продаж.
const reportSystemPrompt = `You are an expert sales and marketing analyst. Generate a comprehensive research report and actionable recommendations based on provided customer data. The report must be professional, insightful, and strictly follow the specified structure. Focus on identifying clear cross-sell (selling new products/services to existing customers) and upsell (encouraging customers to buy more expensive, premium, or additional features of products they already own) opportunities.
Ensure the 'Data Analysis' section clearly articulates findings from purchase patterns, peer benchmarking, and product affinity analysis.
The 'Recommendations' section should be a concise, numbered list of actionable suggestions, directly referencing the type (Cross-Sell or Upsell) and a brief reason.
The 'Conclusion' should summarize the potential impact and be forward-looking.

Report Structure to follow:
Research Report: Cross-Sell and Upsell Opportunities for <customer name>

Introduction
Customer Overview
Data Analysis
Recommendations
Conclusion`

// AnthropicConfig конфигурация LLM-синтезатора отчетов
type AnthropicConfig struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	RequestsPerMin int
	MaxTokens      int64
}

// AnthropicSynthesizer синтезатор отчетов поверх Anthropic Messages API.
// Запросы ограничены rate-лимитером, чтобы не упираться в лимиты провайдера.
type AnthropicSynthesizer struct {
	client    anthropic.Client
	model     string
	timeout   time.Duration
	maxTokens int64
	limiter   *rate.Limiter
}

// NewAnthropicSynthesizer создает новый LLM-синтезатор
func NewAnthropicSynthesizer(cfg AnthropicConfig) *AnthropicSynthesizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 20
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}

	return &AnthropicSynthesizer{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMin)), 1),
	}
}

// Synthesize генерирует нарративный отчет по результату пайплайна
func (s *AnthropicSynthesizer) Synthesize(ctx context.Context, result *recommendation.Result) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter interrupted: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := s.buildPrompt(result)

	started := time.Now()
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: s.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: reportSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("report synthesis failed: %w", err)
	}

	var report strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			report.WriteString(block.Text)
		}
	}
	if report.Len() == 0 {
		return "", fmt.Errorf("report synthesis returned no text content")
	}

	log.Printf("Отчет сгенерирован за %v (модель %s, токенов: %d)",
		time.Since(started).Round(time.Millisecond), s.model,
		msg.Usage.InputTokens+msg.Usage.OutputTokens)
	return report.String(), nil
}

// buildPrompt собирает пользовательский промпт из результата пайплайна
func (s *AnthropicSynthesizer) buildPrompt(result *recommendation.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate the full research report for customer ID %s using the following data:\n\n", result.Profile.CustomerID)
	fmt.Fprintf(&b, "Customer Name: %s\n\n", result.Profile.CustomerName)
	fmt.Fprintf(&b, "Customer Overview Data:\n%s\n\n", buildCustomerOverview(result))
	fmt.Fprintf(&b, "Data Analysis Insights:\n%s\n\n", buildDataAnalysis(result))
	fmt.Fprintf(&b, "Recommendations for Report:\n%s\n", buildRecommendationsList(result))
	return b.String()
}
