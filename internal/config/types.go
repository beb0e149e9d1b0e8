package config

// Config is the top-level resumesite configuration, corresponding to
// .resumesite.yml.
type Config struct {
	SiteTitle string          `yaml:"site_title" koanf:"site_title"`
	Lang      string          `yaml:"lang" koanf:"lang"`
	PublicDir string          `yaml:"public_dir" koanf:"public_dir"`
	OutputDir string          `yaml:"output_dir" koanf:"output_dir"`
	Origin    string          `yaml:"origin" koanf:"origin"`
	Include   []string        `yaml:"include" koanf:"include"`
	Exclude   []string        `yaml:"exclude" koanf:"exclude"`
	LogFormat string          `yaml:"log_format" koanf:"log_format"`
	Partials  PartialsConfig  `yaml:"partials" koanf:"partials"`
	Portfolio PortfolioConfig `yaml:"portfolio" koanf:"portfolio"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
}

// PartialsConfig controls partial injection.
type PartialsConfig struct {
	Dir            string `yaml:"dir" koanf:"dir"`
	MaxConcurrency int    `yaml:"max_concurrency" koanf:"max_concurrency"`
}

// PortfolioConfig controls portfolio loading and rendering.
type PortfolioConfig struct {
	Path         string `yaml:"path" koanf:"path"`
	ErrorMessage string `yaml:"error_message" koanf:"error_message"`
	DateLayout   string `yaml:"date_layout" koanf:"date_layout"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	TimeoutSeconds  int  `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}
