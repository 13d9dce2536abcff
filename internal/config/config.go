package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"

	AuthModeFirebase = "firebase"
	AuthModeLocal    = "local"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Auth      AuthConfig      `yaml:"auth"`
	JWT       JWTConfig       `yaml:"jwt"`
	Club      ClubConfig      `yaml:"club"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	GitHub    GitHubConfig    `yaml:"github"`
	Chat      ChatConfig      `yaml:"chat"`
	Email     EmailConfig     `yaml:"email"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	GRPCPort       int      `yaml:"grpc_port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig selects the document store. PostgreSQL settings are only
// read when Driver is "postgres".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" or "firestore"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

type AuthConfig struct {
	Mode string `yaml:"mode"` // "firebase" or "local"
	// Accounts registered with these emails get the admin claim on creation.
	BootstrapAdminEmails []string `yaml:"bootstrap_admin_emails"`
}

// JWTConfig contains JWT token settings for local auth mode
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
	ExchangeExpiry    int    `yaml:"exchange_token_expiry_minutes"`
}

type ClubConfig struct {
	Name              string    `yaml:"name"`
	EmailDomain       string    `yaml:"email_domain"`
	MinPasswordLength int       `yaml:"min_password_length"`
	Timezone          string    `yaml:"timezone"`
	FoundedAt         time.Time `yaml:"founded_at"`

	location *time.Location
}

// Location is the zone semesters are computed in. Valid after Validate.
func (c ClubConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

type CalendarConfig struct {
	APIKey        string        `yaml:"api_key"`
	CalendarID    string        `yaml:"calendar_id"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	UpcomingLimit int           `yaml:"upcoming_limit"`
	MaxResults    int           `yaml:"max_results"`
}

func (c CalendarConfig) Enabled() bool {
	return c.APIKey != "" && c.CalendarID != ""
}

type GitHubConfig struct {
	Token        string        `yaml:"token"`
	Org          string        `yaml:"org"`
	BaseURL      string        `yaml:"base_url"`
	RepoCacheTTL time.Duration `yaml:"repo_cache_ttl"`
	ListLimit    int           `yaml:"list_limit"`
}

type ChatConfig struct {
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	MaxTokens       int    `yaml:"max_tokens"`
	ContextMessages int    `yaml:"context_messages"`
}

func (c ChatConfig) Enabled() bool {
	return c.APIKey != ""
}

// EmailConfig contains outbound mail settings. Without an API key mail is
// written to the log instead of sent.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
	ContactTo      string `yaml:"contact_to"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SyncEvents string `yaml:"sync_events"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		c.Server.AllowedOrigins = strings.Split(val, ",")
	}

	// Database
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Integrations
	if val := os.Getenv("GOOGLE_CALENDAR_API_KEY"); val != "" {
		c.Calendar.APIKey = val
	}
	if val := os.Getenv("GOOGLE_CALENDAR_ID"); val != "" {
		c.Calendar.CalendarID = val
	}
	if val := os.Getenv("GITHUB_TOKEN"); val != "" {
		c.GitHub.Token = val
	}
	if val := os.Getenv("GITHUB_ORG"); val != "" {
		c.GitHub.Org = val
	}
	if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
		c.Chat.APIKey = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("CONTACT_TO"); val != "" {
		c.Email.ContactTo = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = c.Server.Port + 1
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 || c.Server.GRPCPort == c.Server.Port {
		return fmt.Errorf("invalid gRPC port: %d", c.Server.GRPCPort)
	}

	// Database validation
	if c.Database.Driver == "" {
		c.Database.Driver = DriverFirestore
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	case DriverFirestore:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project id is required for the firestore driver")
		}
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}

	// Auth validation
	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeFirebase
	}
	switch c.Auth.Mode {
	case AuthModeFirebase:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project id is required for firebase auth")
		}
	case AuthModeLocal:
		if c.Database.Driver != DriverPostgres {
			return fmt.Errorf("local auth requires the postgres driver")
		}
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT secret is required")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Auth.Mode)
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.ExchangeExpiry == 0 {
		c.JWT.ExchangeExpiry = 5
	}

	// Club defaults
	if c.Club.Name == "" {
		c.Club.Name = "Claude Builder Club at Penn State"
	}
	if c.Club.EmailDomain == "" {
		c.Club.EmailDomain = "@psu.edu"
	}
	if !strings.HasPrefix(c.Club.EmailDomain, "@") {
		c.Club.EmailDomain = "@" + c.Club.EmailDomain
	}
	if c.Club.MinPasswordLength == 0 {
		c.Club.MinPasswordLength = 6
	}
	if c.Club.Timezone == "" {
		c.Club.Timezone = "America/New_York"
	}
	loc, err := time.LoadLocation(c.Club.Timezone)
	if err != nil {
		return fmt.Errorf("invalid club timezone %q: %w", c.Club.Timezone, err)
	}
	c.Club.location = loc
	if c.Club.FoundedAt.IsZero() {
		c.Club.FoundedAt = time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)
	}

	// Integration defaults
	if c.Calendar.CacheTTL == 0 {
		c.Calendar.CacheTTL = 5 * time.Minute
	}
	if c.Calendar.UpcomingLimit == 0 {
		c.Calendar.UpcomingLimit = 20
	}
	if c.Calendar.MaxResults == 0 {
		c.Calendar.MaxResults = 500
	}
	if c.GitHub.RepoCacheTTL == 0 {
		c.GitHub.RepoCacheTTL = 12 * time.Hour
	}
	if c.GitHub.Org == "" {
		c.GitHub.Org = "Claude-PSU"
	}
	if c.GitHub.ListLimit == 0 {
		c.GitHub.ListLimit = 6
	}
	if c.Chat.Model == "" {
		c.Chat.Model = "claude-sonnet-4-6"
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = 512
	}
	if c.Chat.ContextMessages == 0 {
		c.Chat.ContextMessages = 10
	}
	if c.Email.ContactTo == "" {
		c.Email.ContactTo = "claudepsu@gmail.com"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = c.Club.Name
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 20
	}

	// Scheduler defaults
	if c.Scheduler.SyncEvents == "" {
		c.Scheduler.SyncEvents = "0 0 6 * * *" // 6 AM club time
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health listener address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// IsBootstrapAdmin reports whether email is configured as an initial admin.
func (c *Config) IsBootstrapAdmin(email string) bool {
	for _, e := range c.Auth.BootstrapAdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}
