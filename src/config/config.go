package config

type Config struct {
	Log struct {
		Context bool   `mapstructure:"context"`
		Level   string `mapstructure:"level"`
	} `mapstructure:"log"`

	Core struct {
		InputPath  string `mapstructure:"input_path"`
		RunTimeout uint32 `mapstructure:"run_timeout"` // seconds, 0 disables the global deadline
	} `mapstructure:"core"`

	Checker struct {
		Worker       uint32  `mapstructure:"worker"`
		Timeout      uint32  `mapstructure:"timeout"` // seconds per attempt
		Retries      uint32  `mapstructure:"retries"`
		BackoffMs    uint32  `mapstructure:"backoff_ms"`
		BackoffCapMs uint32  `mapstructure:"backoff_cap_ms"`
		JitterMs     uint32  `mapstructure:"jitter_ms"`
		Strict       bool    `mapstructure:"strict"`
		MaxRedirects uint32  `mapstructure:"max_redirects"`
		SniffBytes   uint32  `mapstructure:"sniff_bytes"`
		RatePerSec   float64 `mapstructure:"rate_per_sec"` // 0 disables rate limiting
	} `mapstructure:"checker"`

	Download struct {
		Enabled           bool   `mapstructure:"enabled"`
		Dir               string `mapstructure:"dir"`
		MaxBytes          int64  `mapstructure:"max_bytes"`
		IncludeRedirected bool   `mapstructure:"include_redirected"`
	} `mapstructure:"download"`

	Report struct {
		CSVPath      string `mapstructure:"csv_path"`
		ActivePath   string `mapstructure:"active_path"`
		InactivePath string `mapstructure:"inactive_path"`
	} `mapstructure:"report"`

	Database struct {
		URL string `mapstructure:"url"` // empty disables check history storage
	} `mapstructure:"database"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Core.InputPath = "js_files.txt"
	cfg.Checker.Worker = 20
	cfg.Checker.Timeout = 12
	cfg.Checker.Retries = 2
	cfg.Checker.BackoffMs = 500
	cfg.Checker.BackoffCapMs = 8000
	cfg.Checker.JitterMs = 250
	cfg.Checker.MaxRedirects = 5
	cfg.Checker.SniffBytes = 512
	cfg.Download.Dir = "active_js_downloads"
	cfg.Download.MaxBytes = 10 << 20
	cfg.Report.CSVPath = "report.csv"
	cfg.Report.ActivePath = "active_js_urls.txt"
	cfg.Report.InactivePath = "inactive_js_urls.txt"
	return cfg
}
