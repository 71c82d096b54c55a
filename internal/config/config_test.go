package config

import (
	"errors"
	"testing"
)

func TestValidateReportsMissingCredentials(t *testing.T) {
	var cfg Config

	err := cfg.Validate()
	if !errors.Is(err, ErrMissingNyneCredentials) {
		t.Errorf("missing nyne sentinel not reported: %v", err)
	}
	if !errors.Is(err, ErrMissingOpenAIKey) {
		t.Errorf("missing openai sentinel not reported: %v", err)
	}

	cfg.NyneAPIKey = "key"
	cfg.NyneAPISecret = "secret"
	err = cfg.Validate()
	if errors.Is(err, ErrMissingNyneCredentials) {
		t.Errorf("nyne reported missing with credentials set: %v", err)
	}
	if !errors.Is(err, ErrMissingOpenAIKey) {
		t.Errorf("missing openai sentinel not reported: %v", err)
	}

	cfg.OpenAIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v with all credentials set", err)
	}
}
