package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/rankdrift/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TeamCount, convey.ShouldEqual, 134)
				convey.So(cfg.TrialCount, convey.ShouldEqual, 100)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.RandomSeed, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RANKDRIFT_TRIAL_COUNT", "10")
			_ = os.Setenv("RANKDRIFT_WORKER_COUNT", "3")
			_ = os.Setenv("RANKDRIFT_SCORING_POLICY", "harsher")
			_ = os.Setenv("RANKDRIFT_RANDOM_SEED", "20240901")
			_ = os.Setenv("RANKDRIFT_REMATCH_REPAIR", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TrialCount, convey.ShouldEqual, 10)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.ScoringPolicy, convey.ShouldEqual, "harsher")
				convey.So(cfg.RandomSeed, convey.ShouldNotBeNil)
				convey.So(*cfg.RandomSeed, convey.ShouldEqual, uint64(20240901))
				convey.So(cfg.RematchRepair, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading nested keys from the environment", func() {
			_ = os.Setenv("RANKDRIFT_STRENGTH__STDDEV", "4.5")
			_ = os.Setenv("RANKDRIFT_SCORING__HARSHER__FAR__LOSS", "-6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the double underscore selects the nested field", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Strength.StdDev, convey.ShouldEqual, 4.5)
				convey.So(cfg.Strength.Distribution, convey.ShouldEqual, "normal")
				convey.So(cfg.Scoring.Harsher.Far.Loss, convey.ShouldEqual, -6.0)
				convey.So(cfg.Scoring.Harsher.Far.Win, convey.ShouldEqual, 3.0)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
team_count: 20
week_count: 8
trial_count: 12
preseason: tiered
tie_break: previous
strength:
  distribution: uniform
  min: 0
  max: 50
outcome:
  model: rank_bins
report_format: csv
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RANKDRIFT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamCount, convey.ShouldEqual, 20)
				convey.So(cfg.WeekCount, convey.ShouldEqual, 8)
				convey.So(cfg.TrialCount, convey.ShouldEqual, 12)
				convey.So(cfg.Preseason, convey.ShouldEqual, "tiered")
				convey.So(cfg.TieBreak, convey.ShouldEqual, "previous")
				convey.So(cfg.Strength.Distribution, convey.ShouldEqual, "uniform")
				convey.So(cfg.Strength.Max, convey.ShouldEqual, 50.0)
				convey.So(cfg.Outcome.Model, convey.ShouldEqual, "rank_bins")
				convey.So(cfg.Outcome.Scale, convey.ShouldEqual, 8.0)
				convey.So(cfg.ReportFormat, convey.ShouldEqual, "csv")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
trial_count: 12
worker_count: 2
top_n: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RANKDRIFT_CONFIG", tmpFile)
			_ = os.Setenv("RANKDRIFT_WORKER_COUNT", "6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TrialCount, convey.ShouldEqual, 12) // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 6) // Overridden by env
				convey.So(cfg.TopN, convey.ShouldEqual, 10)       // From file
			})
		})

		convey.Convey("When loading from an explicit path", func() {
			tmpFile := createTempConfigFile("trial_count: 5\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RANKDRIFT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then the path wins over RANKDRIFT_CONFIG", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TrialCount, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RANKDRIFT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RANKDRIFT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error naming the file", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldStartWith, "cannot read simulation settings: /non/existent/file.yaml")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a loaded value is out of range", func() {
			_ = os.Setenv("RANKDRIFT_TEAM_COUNT", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected before any trial runs", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldEqual, "invalid simulation settings: team_count 7 must be even and at least 2")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a loaded value is not a number", func() {
			_ = os.Setenv("RANKDRIFT_TRIAL_COUNT", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				if key := kv[:i]; len(key) > len(config.EnvPrefix) && key[:len(config.EnvPrefix)] == config.EnvPrefix {
					_ = os.Unsetenv(key)
				}
				break
			}
		}
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "rankdrift-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
