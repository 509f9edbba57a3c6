package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type panickingGenerator struct{}

func (panickingGenerator) Generate(context.Context, GenerateRequest) (string, error) {
	panic("boom")
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _ GenerateRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGateway_MissingCredential(t *testing.T) {
	gen := new(MockGenerator)
	gw := NewGateway(gen, GatewayConfig{APIKey: "  "}, utils.NewNopLogger())

	res := gw.Generate(context.Background(), "sys", "user", 100)

	assert.Equal(t, ResultConfigError, res.Kind)
	assert.Equal(t, "[Error: OPENAI_API_KEY not set in environment]", res.Display())
	assert.Contains(t, res.Display(), CredentialEnv)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGateway_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, GenerateRequest{
		Model:           "m-1",
		System:          "sys",
		User:            "user",
		MaxOutputTokens: 320,
	}).Return("  \n hello world \n", nil)

	gw := NewGateway(gen, GatewayConfig{APIKey: "sk-test", Model: "m-1"}, utils.NewNopLogger())
	res := gw.Generate(context.Background(), "sys", "user", 320)

	assert.True(t, res.IsOK())
	assert.Equal(t, "hello world", res.Display())
	gen.AssertExpectations(t)
}

func TestGateway_TransportFailure(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	gw := NewGateway(gen, GatewayConfig{APIKey: "sk-test"}, utils.NewNopLogger())
	res := gw.Generate(context.Background(), "sys", "user", 10)

	assert.Equal(t, ResultTransportError, res.Kind)
	assert.Equal(t, "[Error calling model: connection refused]", res.Display())
}

func TestGateway_Timeout(t *testing.T) {
	gw := NewGateway(slowGenerator{}, GatewayConfig{APIKey: "sk-test", Timeout: 20 * time.Millisecond}, utils.NewNopLogger())

	start := time.Now()
	res := gw.Generate(context.Background(), "sys", "user", 10)

	assert.Equal(t, ResultTransportError, res.Kind)
	assert.Contains(t, res.Detail, "deadline exceeded")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGateway_RecoversPanics(t *testing.T) {
	gw := NewGateway(panickingGenerator{}, GatewayConfig{APIKey: "sk-test"}, utils.NewNopLogger())

	assert.NotPanics(t, func() {
		res := gw.Generate(context.Background(), "sys", "user", 10)
		assert.Equal(t, ResultTransportError, res.Kind)
		assert.Contains(t, res.Detail, "boom")
	})
}

func TestGateway_NilBackend(t *testing.T) {
	gw := NewGateway(nil, GatewayConfig{APIKey: "sk-test"}, utils.NewNopLogger())
	res := gw.Generate(context.Background(), "sys", "user", 10)
	assert.Equal(t, ResultTransportError, res.Kind)
}

func TestResult_Display(t *testing.T) {
	assert.Equal(t, "text", OK("text").Display())
	assert.Equal(t, "[Error calling model: unknown error]", TransportError(nil).Display())
	assert.Equal(t, "[Error: x]", ConfigError("x").Display())
}
