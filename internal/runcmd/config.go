package runcmd

import "github.com/caarlos0/env/v6"

// envConfig captures the environment-variable overrides the CLI accepts
// alongside its flags: WISP_TRACE, WISP_GC_STRESS, WISP_HEAP_MB. They are
// read through caarlos0/env/v6 rather than hand-rolled os.Getenv calls.
type envConfig struct {
	Trace    bool `env:"WISP_TRACE" envDefault:"false"`
	GCStress bool `env:"WISP_GC_STRESS" envDefault:"false"`
	HeapMB   int  `env:"WISP_HEAP_MB" envDefault:"0"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// resolvedConfig is what actually governs a run, after flags (when
// explicitly passed) have taken precedence over the environment, which in
// turn takes precedence over the zero-value default.
type resolvedConfig struct {
	Trace    bool
	GCStress bool
	HeapMB   int
}

func resolve(c *Cmd, envCfg envConfig) resolvedConfig {
	cfg := resolvedConfig{Trace: envCfg.Trace, GCStress: envCfg.GCStress, HeapMB: envCfg.HeapMB}
	if c.flags["trace"] {
		cfg.Trace = c.Trace
	}
	if c.flags["stress-gc"] {
		cfg.GCStress = c.StressGC
	}
	if c.flags["heap-mb"] {
		cfg.HeapMB = c.HeapMB
	}
	return cfg
}
