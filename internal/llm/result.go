package llm

import "fmt"

// CredentialEnv names the environment variable holding the API key.
const CredentialEnv = "OPENAI_API_KEY"

type ResultKind string

const (
	ResultOK             ResultKind = "ok"
	ResultConfigError    ResultKind = "config_error"
	ResultTransportError ResultKind = "transport_error"
)

// Result is the outcome of one generation call. Failures are values, not
// errors: the caller always has something to display.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Detail string     `json:"detail,omitempty"`
}

func OK(text string) Result {
	return Result{Kind: ResultOK, Text: text}
}

func ConfigError(detail string) Result {
	return Result{Kind: ResultConfigError, Detail: detail}
}

func TransportError(err error) Result {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return Result{Kind: ResultTransportError, Detail: detail}
}

func (r Result) IsOK() bool {
	return r.Kind == ResultOK
}

// Display renders the result in the response channel. Errors use the
// bracketed marker format shown to learners.
func (r Result) Display() string {
	switch r.Kind {
	case ResultOK:
		return r.Text
	case ResultConfigError:
		return fmt.Sprintf("[Error: %s]", r.Detail)
	default:
		return fmt.Sprintf("[Error calling model: %s]", r.Detail)
	}
}
