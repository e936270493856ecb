package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo .env).
type Config struct {
	App  AppConfig
	DB   DBConfig
	HTTP HTTPConfig
	KPI  KPIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// DBConfig configuración de PostgreSQL. Todos los campos son obligatorios:
// la ausencia de cualquiera impide el arranque (fail fast, sin valores por defecto).
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	CAPem    string // contenido PEM del certificado raíz para TLS (DB_CA_PEM)
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
// El TLS no viaja en el DSN: el pool lo configura desde CAPem.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KPIConfig constantes de negocio de los indicadores del dashboard.
type KPIConfig struct {
	// LowStockThreshold unidades a partir de las cuales (inclusive) un producto cuenta como "stock bajo".
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env).
// Las variables DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME y DB_CA_PEM son
// obligatorias; si falta alguna se devuelve un error que las enumera.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var missing []string
	requireString := func(key string) string {
		s := v.GetString(key)
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-dashboard"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Host:     requireString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     requireString("DB_USER"),
			Password: requireString("DB_PASSWORD"),
			DBName:   requireString("DB_NAME"),
			CAPem:    requireString("DB_CA_PEM"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		KPI: KPIConfig{
			LowStockThreshold: getInt(v, "KPI_LOW_STOCK_THRESHOLD", 10),
		},
	}
	if cfg.DB.Port == 0 {
		missing = append(missing, "DB_PORT")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan variables de entorno obligatorias: %s", strings.Join(missing, ", "))
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
		return v.GetInt(key)
	}
	return def
}
