package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig
	Gin      *GinConfig
	Postgres *PostgresConfig
	Admin    *AdminConfig
	Ticket   *TicketConfig
}

type APIConfig struct {
	Environment        string
	Port               string
	BaseURL            string
	AllowedCORSDomains []string
	JWTSigningKey      string
	TokenTTLMinutes    int
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

type AdminConfig struct {
	InitialUsername string
	InitialPassword string
}

type TicketConfig struct {
	EventName     string
	Price         float64
	PDFDir        string
	ScanQueueSize int
}

// envBindings maps config keys to the legacy variable names the deployment
// already exports. Everything else follows the API_PORT style.
var envBindings = map[string]string{
	"admin.initialusername": "ADMIN_INITIAL_USERNAME",
	"admin.initialpassword": "ADMIN_INITIAL_PASSWORD",
	"api.jwtsigningkey":     "JWT_SECRET",
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("v.BindEnv(%v) -> %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{
		API: &APIConfig{
			Environment:        v.GetString("api.environment"),
			Port:               v.GetString("api.port"),
			BaseURL:            v.GetString("api.baseurl"),
			AllowedCORSDomains: splitDomains(v.GetStringSlice("api.allowedcorsdomains")),
			JWTSigningKey:      v.GetString("api.jwtsigningkey"),
			TokenTTLMinutes:    v.GetInt("api.tokenttlminutes"),
		},
		Gin: &GinConfig{
			Mode: v.GetString("gin.mode"),
		},
		Postgres: &PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			DB:       v.GetString("postgres.db"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Admin: &AdminConfig{
			InitialUsername: v.GetString("admin.initialusername"),
			InitialPassword: v.GetString("admin.initialpassword"),
		},
		Ticket: &TicketConfig{
			EventName:     v.GetString("ticket.eventname"),
			Price:         v.GetFloat64("ticket.price"),
			PDFDir:        v.GetString("ticket.pdfdir"),
			ScanQueueSize: v.GetInt("ticket.scanqueuesize"),
		},
	}

	if conf.Ticket.PDFDir == "" {
		conf.Ticket.PDFDir = os.TempDir()
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "5000")
	v.SetDefault("api.tokenttlminutes", 60)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("ticket.eventname", "Big Bull Night")
	v.SetDefault("ticket.price", 2500)
	v.SetDefault("ticket.scanqueuesize", 64)
}

// splitDomains accepts both a YAML list and a comma separated env value.
func splitDomains(raw []string) []string {
	domains := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, d := range strings.Split(item, ",") {
			if d = strings.TrimSpace(d); d != "" {
				domains = append(domains, d)
			}
		}
	}
	return domains
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required),
		validation.Field(&c.API.TokenTTLMinutes, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.Admin,
		validation.Field(&c.Admin.InitialUsername, validation.Required),
		validation.Field(&c.Admin.InitialPassword, validation.Required),
	); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	if err := validation.ValidateStruct(c.Ticket,
		validation.Field(&c.Ticket.EventName, validation.Required),
		validation.Field(&c.Ticket.Price, validation.Min(0.0)),
		validation.Field(&c.Ticket.ScanQueueSize, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("ticket: %w", err)
	}

	return nil
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}
