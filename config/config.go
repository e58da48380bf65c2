package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string        `mapstructure:"port"`
	UploadDir     string        `mapstructure:"upload_dir"`
	MongoURI      string        `mapstructure:"MONGODB_URI"`
	MongoDatabase string        `mapstructure:"mongo_database"`
	AI            AIConfig      `mapstructure:"ai"`
	Ranking       RankingConfig `mapstructure:"ranking"`
}

// AIConfig holds the completion service settings. When AzureEndpoint is set
// the client talks to Azure OpenAI and Deployment names the model
// deployment; otherwise BaseURL points at any OpenAI-compatible server.
type AIConfig struct {
	AzureEndpoint   string `mapstructure:"azure_endpoint"`
	AzureAPIVersion string `mapstructure:"azure_api_version"`
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"AZURE_OPENAI_KEY"`
	Deployment      string `mapstructure:"deployment"`
	MaxAnswerTokens int    `mapstructure:"max_answer_tokens"`
}

// RankingConfig exposes the retrieval heuristics as configuration. The
// defaults are the values the service has been running with; see README for
// what each knob does.
type RankingConfig struct {
	MinTokenLength    int `mapstructure:"min_token_length"`
	WindowBefore      int `mapstructure:"window_before"`
	WindowAfter       int `mapstructure:"window_after"`
	NoMatchPrefix     int `mapstructure:"no_match_prefix"`
	LowScoreThreshold int `mapstructure:"low_score_threshold"`
	TopChunks         int `mapstructure:"top_chunks"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Secrets come from the environment, not the yaml file
	v.BindEnv("MONGODB_URI")
	v.BindEnv("ai.AZURE_OPENAI_KEY", "AZURE_OPENAI_KEY", "OPENAI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("mongo_database", "studymate")
	v.SetDefault("ai.azure_api_version", "2024-04-01-preview")
	v.SetDefault("ai.max_answer_tokens", 500)
	v.SetDefault("ranking.min_token_length", 2)
	v.SetDefault("ranking.window_before", 500)
	v.SetDefault("ranking.window_after", 1500)
	v.SetDefault("ranking.no_match_prefix", 2000)
	v.SetDefault("ranking.low_score_threshold", 2)
	v.SetDefault("ranking.top_chunks", 3)
}
