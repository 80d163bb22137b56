package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/ai"
	"github.com/spigell/carmatch/internal/ai/gemini"
	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/logger"
	"github.com/spigell/carmatch/internal/preferences"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
	"github.com/spigell/carmatch/internal/secrets"
)

const providerOffline = "offline"

var errExit = errors.New("exit requested")

// setup builds the logger and reads the config. Both failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func loadCatalog(config *Config, logger *zap.Logger) *catalog.Catalog {
	c := catalog.LoadOrEmpty(config.Catalog, logger)
	logger.Debug("catalog loaded", zap.String("path", config.Catalog), zap.Int("count", c.Len()))
	return c
}

func newRanker(c *catalog.Catalog, config *Config, logger *zap.Logger) (*ranking.Ranker, error) {
	cfg := ranking.Config{
		Importance: profile.DefaultImportance().Merge(config.Importance),
	}
	if config.Ranking != nil {
		cfg.TopN = config.Ranking.TopN
		cfg.Weights = config.Ranking.Weights
	}

	extractor := preferences.NewExtractor(preferences.DefaultRules(), logger)
	return ranking.New(c, extractor, cfg, logger)
}

// loadProfile resolves the lifestyle profile from a profile file, or from quiz
// answers when only an answers file is given. Without either it returns a
// neutral profile.
func loadProfile(profileFile, answersFile string, config *Config) (profile.Lifestyle, error) {
	switch {
	case profileFile != "":
		var l profile.Lifestyle
		if err := readJSON(profileFile, &l); err != nil {
			return nil, fmt.Errorf("reading profile: %w", err)
		}
		return l, nil
	case answersFile != "":
		var raw map[string]any
		if err := readJSON(answersFile, &raw); err != nil {
			return nil, fmt.Errorf("reading quiz answers: %w", err)
		}
		questions, err := profile.LoadQuestions(config.Questions)
		if err != nil {
			return nil, err
		}
		return profile.NewAnalyzer(questions).Analyze(profile.DecodeAnswers(raw)), nil
	default:
		return profile.Neutral(), nil
	}
}

// newAdvisor returns the configured advisor together with its provider and
// model names. A disabled AI section gives the offline advisor.
func newAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Advisor, string, string, error) {
	if cfg == nil || !cfg.Enabled {
		return ai.Offline{}, providerOffline, "", nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, "", "", fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, "", "", errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, "", "", err
	}

	return gemini.NewAdvisor(generator, logger, cfg.Gemini.MaxLogLength), "gemini", generator.Model(), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
