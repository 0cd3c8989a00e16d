package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/achen-dev/gopool/pool"
)

// fileConfig mirrors pool.Config field-for-field with yaml tags, plus the
// session DSN poolctl needs to build a sessionpool.Factory. See
// SPEC_FULL.md §4.12 and testdata/pool.yaml for an example.
type fileConfig struct {
	DSN                            string `yaml:"dsn"`
	MaxTotal                       int    `yaml:"maxTotal"`
	MaxIdle                        int    `yaml:"maxIdle"`
	MinIdle                        int    `yaml:"minIdle"`
	BlockWhenExhausted             bool   `yaml:"blockWhenExhausted"`
	MaxWaitMillis                  int64  `yaml:"maxWaitMillis"`
	Lifo                           bool   `yaml:"lifo"`
	TestOnBorrow                   bool   `yaml:"testOnBorrow"`
	TestOnReturn                   bool   `yaml:"testOnReturn"`
	TestWhileIdle                  bool   `yaml:"testWhileIdle"`
	TimeBetweenEvictionRunsMillis  int64  `yaml:"timeBetweenEvictionRunsMillis"`
	NumTestsPerEvictionRun         int    `yaml:"numTestsPerEvictionRun"`
	MinEvictableIdleTimeMillis     int64  `yaml:"minEvictableIdleTimeMillis"`
	SoftMinEvictableIdleTimeMillis int64  `yaml:"softMinEvictableIdleTimeMillis"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := defaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func defaultFileConfig() *fileConfig {
	d := pool.DefaultConfig()
	return &fileConfig{
		DSN:                            ":memory:",
		MaxTotal:                       d.MaxTotal,
		MaxIdle:                        d.MaxIdle,
		MinIdle:                        d.MinIdle,
		BlockWhenExhausted:             d.BlockWhenExhausted,
		MaxWaitMillis:                  d.MaxWaitMillis,
		Lifo:                           d.Lifo,
		TestOnBorrow:                   d.TestOnBorrow,
		TestOnReturn:                   d.TestOnReturn,
		TestWhileIdle:                  d.TestWhileIdle,
		TimeBetweenEvictionRunsMillis:  d.TimeBetweenEvictionRunsMillis,
		NumTestsPerEvictionRun:         d.NumTestsPerEvictionRun,
		MinEvictableIdleTimeMillis:     d.MinEvictableIdleTimeMillis,
		SoftMinEvictableIdleTimeMillis: d.SoftMinEvictableIdleTimeMillis,
	}
}

func (c *fileConfig) toPoolConfig(logger pool.Logger) *pool.Config {
	return &pool.Config{
		MaxTotal:                       c.MaxTotal,
		MaxIdle:                        c.MaxIdle,
		MinIdle:                        c.MinIdle,
		BlockWhenExhausted:             c.BlockWhenExhausted,
		MaxWaitMillis:                  c.MaxWaitMillis,
		Lifo:                           c.Lifo,
		TestOnBorrow:                   c.TestOnBorrow,
		TestOnReturn:                   c.TestOnReturn,
		TestWhileIdle:                  c.TestWhileIdle,
		TimeBetweenEvictionRunsMillis:  c.TimeBetweenEvictionRunsMillis,
		NumTestsPerEvictionRun:         c.NumTestsPerEvictionRun,
		MinEvictableIdleTimeMillis:     c.MinEvictableIdleTimeMillis,
		SoftMinEvictableIdleTimeMillis: c.SoftMinEvictableIdleTimeMillis,
		Logger:                         logger,
	}
}
