package bootstrap

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"

	"combgame/internal/usecase/short"
)

type Config struct {
	ServerPort           string `mapstructure:"SERVER_PORT"`
	GrpcPort             string `mapstructure:"GRPC_PORT"`
	EvaluatorAddr        string `mapstructure:"EVALUATOR_ADDR"`
	RedisUrl             string `mapstructure:"REDIS_URL"`
	MongoUri             string `mapstructure:"MONGO_URI"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors          bool   `mapstructure:"LOCAL_CORS"`
	CacheTTLSeconds      int    `mapstructure:"CACHE_TTL_SECONDS"`
	PageLimitAnalyses    int    `mapstructure:"PAGE_LIMIT_ANALYSES"`
	MaxGameDepth         int    `mapstructure:"MAX_GAME_DEPTH"`
	MaxGameNodes         int    `mapstructure:"MAX_GAME_NODES"`
	MaxBoardCells        int    `mapstructure:"MAX_BOARD_CELLS"`
	DeciderMemo          bool   `mapstructure:"DECIDER_MEMO"`
	DeciderParallelDepth int    `mapstructure:"DECIDER_PARALLEL_DEPTH"`
	EvalTimeoutSeconds   int    `mapstructure:"EVAL_TIMEOUT_SECONDS"`
}

var defaults = map[string]any{
	"SERVER_PORT":            "8080",
	"GRPC_PORT":              "8082",
	"EVALUATOR_ADDR":         "",
	"REDIS_URL":              "localhost:6379",
	"MONGO_URI":              "mongodb://localhost:27017",
	"MONGO_DATABASE":         "combgame",
	"LOCAL_CORS":             false,
	"CACHE_TTL_SECONDS":      3600,
	"PAGE_LIMIT_ANALYSES":    20,
	"MAX_GAME_DEPTH":         short.DefaultLimits.MaxDepth,
	"MAX_GAME_NODES":         short.DefaultLimits.MaxNodes,
	"MAX_BOARD_CELLS":        24,
	"DECIDER_MEMO":           true,
	"DECIDER_PARALLEL_DEPTH": 2,
	"EVAL_TIMEOUT_SECONDS":   30,
}

// Setup reads cfgPath when it exists, then lets environment variables
// override any key. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Limits() short.Limits {
	return short.Limits{MaxDepth: c.MaxGameDepth, MaxNodes: c.MaxGameNodes}
}

func (c *Config) DeciderOptions() []short.Option {
	return []short.Option{
		short.WithMemo(c.DeciderMemo),
		short.WithParallelDepth(c.DeciderParallelDepth),
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) EvalTimeout() time.Duration {
	return time.Duration(c.EvalTimeoutSeconds) * time.Second
}
