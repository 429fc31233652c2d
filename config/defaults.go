// =============================================================================
// 📦 hiermatch 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Hierarchy: DefaultHierarchyConfig(),
		KB:        DefaultKBConfig(),
		Matching:  DefaultMatchingConfig(),
		Metrics:   DefaultMetricsConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultHierarchyConfig 返回默认层级配置
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		Path:       "",
		Precompute: false,
	}
}

// DefaultKBConfig 返回默认知识库配置
func DefaultKBConfig() KBConfig {
	return KBConfig{
		Prefixes: []string{"http://dbpedia.org/ontology/"},
	}
}

// DefaultMatchingConfig 返回默认匹配配置
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		Strategy:       "subsumption",
		SpanMode:       "weak",
		CountUnaligned: false,
		Workers:        1,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "hiermatch",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "hiermatch",
		SampleRate:   0.1,
	}
}
