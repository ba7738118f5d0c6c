package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	SMTP    SMTPConfig
	Alerts  AlertsConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Storage string // postgres | memory
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL     string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
	// intentos de login por IP y ventana
	LoginMax    int
	LoginWindow time.Duration
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig credenciales del servidor de correo saliente.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled indica si hay un servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// AlertsConfig configuración de la alerta diaria de mantenimientos por vencer.
type AlertsConfig struct {
	Recipient string
	Hour      int    // hora local de ejecución (0-23)
	Timezone  string // ej. America/Bogota
}

// Location resuelve la zona horaria configurada; UTC si no es válida.
func (c AlertsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RedisConfig conexión opcional a Redis (cache de productos). Addr vacío = sin cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuditConfig parámetros del escritor de auditoría.
type AuditConfig struct {
	QueueSize    int
	WriteTimeout time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "romero-inventario"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:     getString(v, "DATABASE_URL", ""),
			Host:            getString(v, "DB_HOST", "localhost"),
			Port:            getInt(v, "DB_PORT", 5432),
			User:            getString(v, "DB_USER", "postgres"),
			Password:        getString(v, "DB_PASSWORD", ""),
			DBName:          getString(v, "DB_NAME", "romero_inventario"),
			SSLMode:         getString(v, "DB_SSLMODE", "disable"),
			MaxConns:        int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:        int32(getInt(v, "DB_MIN_CONNS", 2)),
			MaxConnIdleTime: time.Duration(getInt(v, "DB_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute,
			ConnectTimeout:  time.Duration(getInt(v, "DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "romero-inventario"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			LoginMax:    getInt(v, "LOGIN_RATE_MAX", 10),
			LoginWindow: time.Duration(getInt(v, "LOGIN_RATE_WINDOW_SEC", 60)) * time.Second,
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "inventario@romeropanificados.com"),
		},
		Alerts: AlertsConfig{
			Recipient: getString(v, "ALERT_RECIPIENT", ""),
			Hour:      getInt(v, "ALERT_HOUR", 7),
			Timezone:  getString(v, "ALERT_TIMEZONE", "America/Bogota"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Audit: AuditConfig{
			QueueSize:    getInt(v, "AUDIT_QUEUE_SIZE", 256),
			WriteTimeout: time.Duration(getInt(v, "AUDIT_WRITE_TIMEOUT_SECONDS", 2)) * time.Second,
		},
		Storage: strings.ToLower(getString(v, "STORAGE_DRIVER", StoragePostgres)),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("config: STORAGE_DRIVER inválido %q", cfg.Storage)
	}
	if cfg.Alerts.Hour < 0 || cfg.Alerts.Hour > 23 {
		return nil, fmt.Errorf("config: ALERT_HOUR fuera de rango: %d", cfg.Alerts.Hour)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
