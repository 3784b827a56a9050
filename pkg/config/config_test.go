package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	// Packages
	errors "github.com/djthorpe/go-errors"
	config "github.com/mutablelogic/go-callreview/pkg/config"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_Config_001(t *testing.T) {
	assert := assert.New(t)
	cfg, err := config.Load("")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(config.Default(), cfg)
	assert.Equal(3, cfg.Merge.MinWords)
	assert.Equal([]string{"lojas caedu", "gerente de negociação", "pré jurídico"}, cfg.Classifier.Phrases)
	assert.Equal(config.ProviderAssemblyAI, cfg.Transcription.Provider)
	assert.Equal(3*time.Second, cfg.Transcription.PollInterval)
	assert.Equal("gpt-4o-mini", cfg.Report.Model)
	assert.Contains(cfg.Report.Prompt, "{{ .Transcript }}")
}

func Test_Config_002(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "callreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
merge:
  min_words: 1
classifier:
  phrases:
    - central de cobrança
transcription:
  provider: elevenlabs
  timeout: 2m
`), 0644))

	cfg, err := config.Load(path)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(1, cfg.Merge.MinWords)
	assert.Equal([]string{"central de cobrança"}, cfg.Classifier.Phrases)
	assert.Equal(config.ProviderElevenLabs, cfg.Transcription.Provider)
	assert.Equal(2*time.Minute, cfg.Transcription.Timeout)

	// Unset keys keep their defaults
	assert.Equal("pt", cfg.Transcription.Language)
	assert.Equal(0.3, cfg.Report.Temperature)
}

func Test_Config_003(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("CALLREVIEW_MERGE_MIN_WORDS", "5")
	t.Setenv("CALLREVIEW_TRANSCRIPTION_PROVIDER", "gowhisper")
	t.Setenv("CALLREVIEW_REPORT_MODEL", "gpt-4o")

	cfg, err := config.Load("")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(5, cfg.Merge.MinWords)
	assert.Equal(config.ProviderGoWhisper, cfg.Transcription.Provider)
	assert.Equal("gpt-4o", cfg.Report.Model)
}

func Test_Config_004(t *testing.T) {
	assert := assert.New(t)

	tests := []func(*config.Config){
		func(c *config.Config) { c.Merge.MinWords = -1 },
		func(c *config.Config) { c.Transcription.Provider = "deepgram" },
		func(c *config.Config) { c.Transcription.PollInterval = 0 },
		func(c *config.Config) { c.Transcription.Timeout = time.Second },
		func(c *config.Config) { c.Report.Model = "" },
		func(c *config.Config) { c.Report.Temperature = 3 },
		func(c *config.Config) { c.Report.Prompt = "no transcript here" },
		func(c *config.Config) { c.Report.Retries = -1 },
	}
	for i, fn := range tests {
		cfg := config.Default()
		fn(&cfg)
		err := cfg.Validate()
		assert.ErrorIs(err, errors.ErrBadParameter, "case %d", i)
	}
	assert.NoError(config.Default().Validate())
}

func Test_Config_005(t *testing.T) {
	assert := assert.New(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, errors.ErrBadParameter)
}

func Test_Config_006(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	assert.NoError(config.Default().Write(&buf))
	assert.Contains(buf.String(), "min_words: 3")
	assert.Contains(buf.String(), "provider: assemblyai")
	assert.Contains(buf.String(), "- lojas caedu")

	// Round trip through the loader
	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	cfg, err := config.Load(path)
	if assert.NoError(err) {
		assert.Equal(config.Default().Merge, cfg.Merge)
		assert.Equal(config.Default().Classifier, cfg.Classifier)
		assert.Equal(config.Default().Report, cfg.Report)
	}
}
