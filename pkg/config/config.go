package config

import (
	"io"
	"strings"
	"time"

	// Packages
	errors "github.com/djthorpe/go-errors"
	viper "github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	Merge         Merge         `yaml:"merge" mapstructure:"merge"`
	Classifier    Classifier    `yaml:"classifier" mapstructure:"classifier"`
	Transcription Transcription `yaml:"transcription" mapstructure:"transcription"`
	Report        Report        `yaml:"report" mapstructure:"report"`
}

type Merge struct {
	MinWords int `yaml:"min_words" mapstructure:"min_words"`
}

type Classifier struct {
	Phrases []string `yaml:"phrases" mapstructure:"phrases"`
}

type Transcription struct {
	Provider     string        `yaml:"provider" mapstructure:"provider"` // assemblyai, elevenlabs, gowhisper
	Language     string        `yaml:"language,omitempty" mapstructure:"language"`
	Speakers     uint64        `yaml:"speakers" mapstructure:"speakers"`
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Report struct {
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	System      string  `yaml:"system" mapstructure:"system"`
	Prompt      string  `yaml:"prompt" mapstructure:"prompt"`
	Retries     int     `yaml:"retries" mapstructure:"retries"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EnvPrefix = "CALLREVIEW"
)

const (
	ProviderAssemblyAI = "assemblyai"
	ProviderElevenLabs = "elevenlabs"
	ProviderGoWhisper  = "gowhisper"
)

var (
	Providers = []string{ProviderAssemblyAI, ProviderElevenLabs, ProviderGoWhisper}
)

const defaultSystem = `Você é um analista de monitoria de atendimento, objetivo e claro.`

const defaultPrompt = `Você é um analista de conversas especializado em monitoria de atendimento.
Analise a transcrição abaixo e produza um RELATÓRIO ESTRUTURADO com:

1. Resumo objetivo da ligação (máx 5 linhas).
2. Pontos positivos da operadora.
3. Pontos negativos da operadora.
4. Sugestões práticas de melhoria.
5. Notas de 0 a 10 para:
   - Clareza de comunicação
   - Domínio da negociação
   - Postura/profissionalismo
   - Capacidade de fechamento
   - Sua opinião sincera sobre a ligação
6. Nota final (média geral).

Na transcrição, "Operator" é a operadora e "Customer" é o cliente.

Transcrição:
{{ .Transcript }}
`

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Merge: Merge{
			MinWords: 3,
		},
		Classifier: Classifier{
			Phrases: []string{"lojas caedu", "gerente de negociação", "pré jurídico"},
		},
		Transcription: Transcription{
			Provider:     ProviderAssemblyAI,
			Language:     "pt",
			Speakers:     2,
			PollInterval: 3 * time.Second,
			Timeout:      5 * time.Minute,
		},
		Report: Report{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			System:      defaultSystem,
			Prompt:      defaultPrompt,
			Retries:     3,
		},
	}
}

// Load returns the configuration from an optional YAML file, with
// CALLREVIEW_ environment variables taking precedence, on top of the
// defaults
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.ErrBadParameter.Withf("config %q: %v", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.ErrBadParameter.Withf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	// Return success
	return cfg, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks the configuration for values the pipeline cannot use
func (c Config) Validate() error {
	if c.Merge.MinWords < 0 {
		return errors.ErrBadParameter.Withf("merge.min_words must not be negative: %d", c.Merge.MinWords)
	}
	if !isProvider(c.Transcription.Provider) {
		return errors.ErrBadParameter.Withf("transcription.provider %q must be one of %v", c.Transcription.Provider, Providers)
	}
	if c.Transcription.PollInterval <= 0 {
		return errors.ErrBadParameter.With("transcription.poll_interval must be positive")
	}
	if c.Transcription.Timeout < c.Transcription.PollInterval {
		return errors.ErrBadParameter.With("transcription.timeout must be at least transcription.poll_interval")
	}
	if c.Report.Model == "" {
		return errors.ErrBadParameter.With("report.model is required")
	}
	if c.Report.Temperature < 0 || c.Report.Temperature > 2 {
		return errors.ErrBadParameter.Withf("report.temperature out of range: %v", c.Report.Temperature)
	}
	if !strings.Contains(c.Report.Prompt, "{{") {
		return errors.ErrBadParameter.With("report.prompt must reference the transcript")
	}
	if c.Report.Retries < 0 {
		return errors.ErrBadParameter.Withf("report.retries must not be negative: %d", c.Report.Retries)
	}
	return nil
}

// Write the configuration as YAML
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("merge.min_words", cfg.Merge.MinWords)
	v.SetDefault("classifier.phrases", cfg.Classifier.Phrases)
	v.SetDefault("transcription.provider", cfg.Transcription.Provider)
	v.SetDefault("transcription.language", cfg.Transcription.Language)
	v.SetDefault("transcription.speakers", cfg.Transcription.Speakers)
	v.SetDefault("transcription.poll_interval", cfg.Transcription.PollInterval)
	v.SetDefault("transcription.timeout", cfg.Transcription.Timeout)
	v.SetDefault("report.model", cfg.Report.Model)
	v.SetDefault("report.temperature", cfg.Report.Temperature)
	v.SetDefault("report.system", cfg.Report.System)
	v.SetDefault("report.prompt", cfg.Report.Prompt)
	v.SetDefault("report.retries", cfg.Report.Retries)
}

func isProvider(v string) bool {
	for _, provider := range Providers {
		if provider == v {
			return true
		}
	}
	return false
}
