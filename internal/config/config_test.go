package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvStr(t *testing.T) {
	t.Setenv("TEST_STR", "set")
	assert.Equal(t, "set", envStr("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envStr("TEST_STR_MISSING", "fallback"))
}

func TestEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "12.5")
	assert.Equal(t, 12.5, envFloat("TEST_FLOAT", 0))
	assert.Equal(t, 99.0, envFloat("TEST_FLOAT_MISSING", 99))

	t.Setenv("TEST_FLOAT_BAD", "abc")
	assert.Equal(t, 40.0, envFloat("TEST_FLOAT_BAD", 40))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "5s")
	assert.Equal(t, 5*time.Second, envDuration("TEST_DUR", 0))
	assert.Equal(t, time.Minute, envDuration("TEST_DUR_MISSING", time.Minute))

	t.Setenv("TEST_DUR_BAD", "five-seconds")
	assert.Equal(t, time.Minute, envDuration("TEST_DUR_BAD", time.Minute))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLMBaseURL)
	assert.Equal(t, "cl100k_base", cfg.TokenizerEncoding)
	assert.Equal(t, 40.0, cfg.TokenRateUSD)
	assert.Equal(t, 90.0, cfg.TokenFXRate)
	assert.Equal(t, 30*time.Minute, cfg.StatusTTL)
	assert.Equal(t, 60*time.Minute, cfg.ResultTTL)
	assert.Equal(t, 10*time.Minute, cfg.PipelineTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RESUMEGEN_PIPELINE_TIMEOUT", "90s")
	t.Setenv("RESUMEGEN_LLM_MODEL", "test-model")
	t.Setenv("DATABASE_URL", "postgres://other:pw@db:5432/other")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.PipelineTimeout)
	assert.Equal(t, "test-model", cfg.LLMModel)
	assert.Equal(t, "postgres://other:pw@db:5432/other", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabaseURL:       "postgres://localhost/resume",
		TokenizerEncoding: "cl100k_base",
		TokenRateUSD:      40,
		TokenFXRate:       90,
		PipelineTimeout:   10 * time.Minute,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.DatabaseURL = ""
	assert.ErrorContains(t, missing.Validate(), "DATABASE_URL")

	noEncoding := valid
	noEncoding.TokenizerEncoding = ""
	assert.ErrorContains(t, noEncoding.Validate(), "RESUMEGEN_TOKENIZER_ENCODING")

	negativeRate := valid
	negativeRate.TokenRateUSD = -1
	assert.Error(t, negativeRate.Validate())

	zeroTimeout := valid
	zeroTimeout.PipelineTimeout = 0
	assert.ErrorContains(t, zeroTimeout.Validate(), "RESUMEGEN_PIPELINE_TIMEOUT")
}
