package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials)
// - default: Values common across all environments (quiet-hour window,
//   timeouts, lead times)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Booking  BookingConfig
	Calendar CalendarConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Stockholm"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"` // json or text (tint)
}

// BookingConfig holds the booking policy knobs. The late-cancel window is the
// boundary between withdrawbefore24 and withdrawafter24.
type BookingConfig struct {
	ImmediateLeadTime time.Duration `envconfig:"BOOKING_IMMEDIATE_LEAD_TIME" default:"5m"`
	LateCancelWindow  time.Duration `envconfig:"BOOKING_LATE_CANCEL_WINDOW" default:"24h"`
	ExpirySweep       string        `envconfig:"BOOKING_EXPIRY_SWEEP_SPEC" default:"0 * * * * *"`
}

// CalendarConfig defines the quiet-hour window and the anchor for deferred
// deliveries. Defaults: night 22:00-06:00, deferred sends roll to 09:00.
type CalendarConfig struct {
	TimeZone          string `envconfig:"CALENDAR_TIMEZONE" default:"Europe/Stockholm"`
	NightStartHour    int    `envconfig:"CALENDAR_NIGHT_START_HOUR" default:"22"`
	NightEndHour      int    `envconfig:"CALENDAR_NIGHT_END_HOUR" default:"6"`
	BusinessOpenHour  int    `envconfig:"CALENDAR_BUSINESS_OPEN_HOUR" default:"9"`
	BusinessCloseHour int    `envconfig:"CALENDAR_BUSINESS_CLOSE_HOUR" default:"17"`
}

type GatewayConfig struct {
	PushEndpoint string        `envconfig:"GATEWAY_PUSH_ENDPOINT" default:"http://localhost:9801/push"`
	PushAppID    string        `envconfig:"GATEWAY_PUSH_APP_ID" default:"dev"`
	PushAPIKey   string        `envconfig:"GATEWAY_PUSH_API_KEY" default:""`
	SMSEndpoint  string        `envconfig:"GATEWAY_SMS_ENDPOINT" default:"http://localhost:9802/sms"`
	SMSSender    string        `envconfig:"GATEWAY_SMS_SENDER" default:""`
	MailEndpoint string        `envconfig:"GATEWAY_MAIL_ENDPOINT" default:"http://localhost:9803/mail"`
	MailSender   string        `envconfig:"GATEWAY_MAIL_SENDER" default:"noreply@example.com"`
	Timeout      time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:  "error", // Error level only for tests
			Format: "json",
		},
		Booking: BookingConfig{
			ImmediateLeadTime: 5 * time.Minute,
			LateCancelWindow:  24 * time.Hour,
			ExpirySweep:       "0 * * * * *",
		},
		Calendar: CalendarConfig{
			TimeZone:          "UTC",
			NightStartHour:    22,
			NightEndHour:      6,
			BusinessOpenHour:  9,
			BusinessCloseHour: 17,
		},
	}
}
