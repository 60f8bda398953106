package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"freight/internal/core/domain/model/packing"
	"freight/internal/pkg/errs"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort      string            `yaml:"http_port"`
	LogLevel      string            `yaml:"log_level"`
	ShutdownGrace time.Duration     `yaml:"shutdown_grace"`
	DB            DBConfig          `yaml:"db"`
	Packing       PackingConfig     `yaml:"packing"`
	RateLimit     RateLimitConfig   `yaml:"rate_limit"`
	WeightAudit   WeightAuditConfig `yaml:"weight_audit"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SslMode  string `yaml:"sslmode"`
}

type PackingConfig struct {
	SafetyMargin           float64 `yaml:"safety_margin"`
	FragileCeilingGrams    float64 `yaml:"fragile_ceiling_g"`
	MinMergeUtilization    float64 `yaml:"min_merge_utilization"`
	RequireTighterDownsize bool    `yaml:"require_tighter_downsize"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"rps"`
	Burst             int     `yaml:"burst"`
}

type WeightAuditConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Schedule string        `yaml:"schedule"`
	Lookback time.Duration `yaml:"lookback"`
	Limit    int           `yaml:"limit"`
}

// DefaultConfig is the lowest configuration layer.
func DefaultConfig() Config {
	return Config{
		HTTPPort:      "8080",
		LogLevel:      "info",
		ShutdownGrace: 15 * time.Second,
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			Name:    "freight",
			SslMode: "disable",
		},
		Packing: PackingConfig{
			SafetyMargin:           packing.DefaultSafetyMargin,
			FragileCeilingGrams:    packing.DefaultFragileCeilingGrams,
			MinMergeUtilization:    packing.DefaultMinMergeUtilization,
			RequireTighterDownsize: packing.DefaultRequireTighterDownsize,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		WeightAudit: WeightAuditConfig{
			Enabled:  true,
			Schedule: "0 0 3 * * *",
			Lookback: 30 * 24 * time.Hour,
			Limit:    500,
		},
	}
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SslMode)
}

// PackingOptions validates the packing thresholds.
func (c Config) PackingOptions() (packing.Options, error) {
	return packing.NewOptions(
		c.Packing.SafetyMargin,
		c.Packing.FragileCeilingGrams,
		c.Packing.MinMergeUtilization,
		c.Packing.RequireTighterDownsize,
	)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("http port"))
	}
	if _, err := c.PackingOptions(); err != nil {
		problems = append(problems, err)
	}
	if c.ShutdownGrace <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("shutdown grace", c.ShutdownGrace, "0 (exclusive)", "unbounded"))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("rate limit rps", c.RateLimit.RequestsPerSecond, 0, "unbounded"))
	}
	return errors.Join(problems...)
}

// Load builds the configuration from, lowest to highest precedence: defaults,
// the YAML file named by --config, the .env file, the process environment and
// command line flags.
func Load(args []string) (Config, error) {
	return load(args, os.LookupEnv)
}

type cliFlags struct {
	configFile string
	envFile    string

	httpPort     *string
	logLevel     *string
	dbHost       *string
	dbPort       *string
	safetyMargin *float64
	auditEnabled *bool

	set map[string]*bool
}

func (f cliFlags) isSet(name string) bool {
	v, ok := f.set[name]
	return ok && *v
}

func parseFlags(args []string) (cliFlags, error) {
	app := kingpin.New("freight", "Freight packing and carrier-cost planning service.")
	app.HelpFlag.Short('h')

	f := cliFlags{set: make(map[string]*bool)}
	track := func(clause *kingpin.FlagClause, name string) *kingpin.FlagClause {
		setByUser := new(bool)
		f.set[name] = setByUser
		return clause.IsSetByUser(setByUser)
	}

	app.Flag("config", "YAML configuration file.").Short('c').StringVar(&f.configFile)
	app.Flag("env-file", "Dotenv file loaded into the environment.").Default(".env").StringVar(&f.envFile)
	f.httpPort = track(app.Flag("http-port", "HTTP listen port."), "http-port").String()
	f.logLevel = track(app.Flag("log-level", "Log level: debug, info, warn, error."), "log-level").
		Enum("debug", "info", "warn", "error")
	f.dbHost = track(app.Flag("db-host", "PostgreSQL host."), "db-host").String()
	f.dbPort = track(app.Flag("db-port", "PostgreSQL port."), "db-port").String()
	f.safetyMargin = track(app.Flag("safety-margin", "Fraction of container capacity usable when packing."),
		"safety-margin").Float64()
	f.auditEnabled = track(app.Flag("weight-audit", "Run the scheduled weight audit."), "weight-audit").Bool()

	if _, err := app.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

func load(args []string, lookup func(string) (string, bool)) (Config, error) {
	flags, err := parseFlags(args)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()

	if flags.configFile != "" {
		if err = loadYAML(flags.configFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readDotenv(flags.envFile)
	if err != nil {
		return Config{}, err
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err = applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	applyFlags(&cfg, flags)

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// readDotenv parses the dotenv file without touching the process
// environment. A missing file is not an error.
func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var problems []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = parsed
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = parsed
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = parsed
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = parsed
		}
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("LOG_LEVEL", &cfg.LogLevel)
	duration("SHUTDOWN_GRACE", &cfg.ShutdownGrace)

	str("DB_HOST", &cfg.DB.Host)
	str("DB_PORT", &cfg.DB.Port)
	str("DB_USER", &cfg.DB.User)
	str("DB_PASSWORD", &cfg.DB.Password)
	str("DB_NAME", &cfg.DB.Name)
	str("DB_SSLMODE", &cfg.DB.SslMode)

	float("PACKING_SAFETY_MARGIN", &cfg.Packing.SafetyMargin)
	float("PACKING_FRAGILE_CEILING_G", &cfg.Packing.FragileCeilingGrams)
	float("PACKING_MIN_MERGE_UTILIZATION", &cfg.Packing.MinMergeUtilization)
	boolean("PACKING_REQUIRE_TIGHTER_DOWNSIZE", &cfg.Packing.RequireTighterDownsize)

	float("RATE_LIMIT_RPS", &cfg.RateLimit.RequestsPerSecond)
	integer("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)

	boolean("WEIGHT_AUDIT_ENABLED", &cfg.WeightAudit.Enabled)
	str("WEIGHT_AUDIT_SCHEDULE", &cfg.WeightAudit.Schedule)
	duration("WEIGHT_AUDIT_LOOKBACK", &cfg.WeightAudit.Lookback)
	integer("WEIGHT_AUDIT_LIMIT", &cfg.WeightAudit.Limit)

	return errors.Join(problems...)
}

func applyFlags(cfg *Config, f cliFlags) {
	if f.isSet("http-port") {
		cfg.HTTPPort = *f.httpPort
	}
	if f.isSet("log-level") {
		cfg.LogLevel = *f.logLevel
	}
	if f.isSet("db-host") {
		cfg.DB.Host = *f.dbHost
	}
	if f.isSet("db-port") {
		cfg.DB.Port = *f.dbPort
	}
	if f.isSet("safety-margin") {
		cfg.Packing.SafetyMargin = *f.safetyMargin
	}
	if f.isSet("weight-audit") {
		cfg.WeightAudit.Enabled = *f.auditEnabled
	}
}
