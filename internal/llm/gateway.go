package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/utils"
)

const DefaultTimeout = 30 * time.Second

// GenerateRequest is a single system+user exchange with an output budget.
type GenerateRequest struct {
	Model           string
	System          string
	User            string
	MaxOutputTokens int
}

// Generator is a remote text-generation backend.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Gateway wraps a Generator so that no failure escapes as an error.
type Gateway struct {
	generator  Generator
	credential string
	model      string
	timeout    time.Duration
	logger     utils.Logger
}

type GatewayConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewGateway(generator Generator, cfg GatewayConfig, logger utils.Logger) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Gateway{
		generator:  generator,
		credential: strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// Configured reports whether a credential is available.
func (g *Gateway) Configured() bool {
	return g.credential != ""
}

// Generate calls the backend with a bounded deadline. A missing credential
// short-circuits without any I/O.
func (g *Gateway) Generate(ctx context.Context, system, user string, maxOutputTokens int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Generation backend panicked", "panic", r)
			result = TransportError(fmt.Errorf("backend panic: %v", r))
		}
	}()

	if !g.Configured() {
		g.logger.Warn("Generation skipped, credential missing", "credential", CredentialEnv)
		return ConfigError(CredentialEnv + " not set in environment")
	}
	if g.generator == nil {
		return TransportError(errors.New("no generation backend configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	g.logger.DebugContext(ctx, "Calling generation service",
		"model", g.model,
		"max_output_tokens", maxOutputTokens,
		"input_chars", len(user))

	text, err := g.generator.Generate(ctx, GenerateRequest{
		Model:           g.model,
		System:          system,
		User:            user,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		g.logger.LogError(err, "Generation service call failed",
			"model", g.model,
			"duration", time.Since(start).String())
		return TransportError(err)
	}

	g.logger.InfoContext(ctx, "Generation service call completed",
		"model", g.model,
		"duration", time.Since(start).String(),
		"output_chars", len(text))

	return OK(strings.TrimSpace(text))
}
