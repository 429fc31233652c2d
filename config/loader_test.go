// 配置加载器测试。
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/hiermatch/types"
)

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	// 不指定配置文件，应该返回默认值
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "subsumption", cfg.Matching.Strategy)
	assert.Equal(t, "weak", cfg.Matching.SpanMode)
	assert.Equal(t, []string{"http://dbpedia.org/ontology/"}, cfg.KB.Prefixes)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hiermatch.yaml")

	yamlContent := `
hierarchy:
  path: testdata/types.yaml
  precompute: true

kb:
  prefixes:
    - "http://example.org/"
    - "urn:kb:"

matching:
  strategy: greedy
  span_mode: exact
  count_unaligned: true
  workers: 4

metrics:
  enabled: true
  namespace: eval

log:
  level: debug
  format: console

telemetry:
  enabled: true
  sample_rate: 1.0
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "testdata/types.yaml", cfg.Hierarchy.Path)
	assert.True(t, cfg.Hierarchy.Precompute)
	assert.Equal(t, []string{"http://example.org/", "urn:kb:"}, cfg.KB.Prefixes)
	assert.Equal(t, "greedy", cfg.Matching.Strategy)
	assert.Equal(t, "exact", cfg.Matching.SpanMode)
	assert.True(t, cfg.Matching.CountUnaligned)
	assert.Equal(t, 4, cfg.Matching.Workers)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "eval", cfg.Metrics.Namespace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)

	// 未出现在 YAML 中的字段保留默认值
	assert.Equal(t, "hiermatch", cfg.Telemetry.ServiceName)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
}

func TestLoader_LoadFromEnv(t *testing.T) {
	t.Setenv("HIERMATCH_HIERARCHY_PATH", "/etc/hiermatch/types.tsv")
	t.Setenv("HIERMATCH_KB_PREFIXES", "http://a.org/, http://b.org/")
	t.Setenv("HIERMATCH_MATCHING_STRATEGY", "greedy")
	t.Setenv("HIERMATCH_MATCHING_WORKERS", "8")
	t.Setenv("HIERMATCH_MATCHING_COUNT_UNALIGNED", "true")
	t.Setenv("HIERMATCH_TELEMETRY_SAMPLE_RATE", "0.5")
	t.Setenv("HIERMATCH_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/hiermatch/types.tsv", cfg.Hierarchy.Path)
	assert.Equal(t, []string{"http://a.org/", "http://b.org/"}, cfg.KB.Prefixes)
	assert.Equal(t, "greedy", cfg.Matching.Strategy)
	assert.Equal(t, 8, cfg.Matching.Workers)
	assert.True(t, cfg.Matching.CountUnaligned)
	assert.Equal(t, 0.5, cfg.Telemetry.SampleRate)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hiermatch.yaml")

	yamlContent := `
matching:
  strategy: greedy
  span_mode: exact
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	// 环境变量应该覆盖 YAML
	t.Setenv("HIERMATCH_MATCHING_STRATEGY", "subsumption")

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "subsumption", cfg.Matching.Strategy)
	// YAML 值应该保留（没有被环境变量覆盖）
	assert.Equal(t, "exact", cfg.Matching.SpanMode)
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	t.Setenv("EVAL_MATCHING_WORKERS", "3")

	cfg, err := NewLoader().WithEnvPrefix("EVAL").Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Matching.Workers)
}

func TestLoader_InvalidEnvValue(t *testing.T) {
	t.Setenv("HIERMATCH_MATCHING_WORKERS", "many")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HIERMATCH_MATCHING_WORKERS")
}

func TestLoader_WithValidator(t *testing.T) {
	t.Setenv("HIERMATCH_MATCHING_STRATEGY", "fuzzy")

	_, err := NewLoader().
		WithValidator((*Config).Validate).
		Load()
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrInvalidConfig))
}

func TestLoader_NonExistentFile(t *testing.T) {
	// 指定不存在的文件，应该使用默认值（不报错）
	cfg, err := NewLoader().
		WithConfigPath("/non/existent/path/hiermatch.yaml").
		Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
matching:
  workers: [invalid
  this is not valid yaml
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))

	_, err := NewLoader().WithConfigPath(configPath).Load()
	assert.Error(t, err)
}

// --- Config 方法测试 ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty strategy falls back to default",
			modify:  func(c *Config) { c.Matching.Strategy = "" },
			wantErr: false,
		},
		{
			name:    "unknown strategy",
			modify:  func(c *Config) { c.Matching.Strategy = "fuzzy" },
			wantErr: true,
		},
		{
			name:    "unknown span mode",
			modify:  func(c *Config) { c.Matching.SpanMode = "partial" },
			wantErr: true,
		},
		{
			name:    "negative workers",
			modify:  func(c *Config) { c.Matching.Workers = -2 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "sample rate above one",
			modify:  func(c *Config) { c.Telemetry.SampleRate = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative sample rate",
			modify:  func(c *Config) { c.Telemetry.SampleRate = -0.1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.ErrInvalidConfig, types.GetErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// --- MustLoad 测试 ---

func TestMustLoad_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hiermatch.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("matching:\n  workers: 2\n"), 0644))

	assert.NotPanics(t, func() {
		cfg := MustLoad(configPath)
		assert.Equal(t, 2, cfg.Matching.Workers)
	})
}

func TestMustLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: [yaml"), 0644))

	assert.Panics(t, func() {
		MustLoad(configPath)
	})
}

func TestLoadFromEnv_Function(t *testing.T) {
	t.Setenv("HIERMATCH_METRICS_NAMESPACE", "env_only")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "env_only", cfg.Metrics.Namespace)
}
