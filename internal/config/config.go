package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, которые переопределяют секреты из файла
const (
	envAdminToken = "ADMIN_TOKEN"
	envDBPassword = "DB_PASSWORD"
)

// placeholderAdminTokens значения-заглушки из примеров, которые нельзя использовать как секрет
var placeholderAdminTokens = []string{"change-me", "changeme", "admin", "secret"}

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Calendar CalendarConfig `toml:"calendar"`
	Jobs     JobsConfig     `toml:"jobs"`
	Admin    AdminConfig    `toml:"admin"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq (key='value', значения экранированы)
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(d.Host), d.Port, quoteDSN(d.User), quoteDSN(d.Password), quoteDSN(d.DBName), quoteDSN(d.SSLMode))
}

// URL строка подключения в формате URL (для golang-migrate)
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig настройки внешнего календаря (источник занятых интервалов)
type CalendarConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	CalendarID string `toml:"calendar_id"`
	Token      string `toml:"token"`
	Timeout    int    `toml:"timeout"` // секунды
}

// JobsConfig расписание фоновых задач
type JobsConfig struct {
	Enabled          bool   `toml:"enabled"`
	CalendarSyncCron string `toml:"calendar_sync_cron"`
	ExpireHoldsCron  string `toml:"expire_holds_cron"`
	Timeout          int    `toml:"timeout"` // секунды
}

// AdminConfig доступ к административным эндпоинтам
type AdminConfig struct {
	Token string `toml:"token"`
}

// WindowConfig окно начала работ
type WindowConfig struct {
	Name string `toml:"name"`
	Hour int    `toml:"hour"`
}

// BookingConfig политика бронирования
type BookingConfig struct {
	TimeZone string         `toml:"time_zone"`
	Windows  []WindowConfig `toml:"windows"`

	ShortLabel   string `toml:"short_label"`
	ShortMinutes int    `toml:"short_minutes"`
	LongLabel    string `toml:"long_label"`
	LongMinutes  int    `toml:"long_minutes"`

	BufferBeforeMinutes int `toml:"buffer_before_minutes"`
	BufferAfterMinutes  int `toml:"buffer_after_minutes"`

	MaxAdvanceDays      int `toml:"max_advance_days"`
	SameDayCutoffHour   int `toml:"same_day_cutoff_hour"`
	NextDayCutoffHour   int `toml:"next_day_cutoff_hour"`
	NextDayEarliestHour int `toml:"next_day_earliest_hour"`
	MinNoticeHours      int `toml:"min_notice_hours"`

	ClosingHour        int      `toml:"closing_hour"`
	WeekendClosingHour int      `toml:"weekend_closing_hour"`
	ClosedWeekdays     []string `toml:"closed_weekdays"`

	HoldTTLMinutes int  `toml:"hold_ttl_minutes"`
	AutoConfirm    bool `toml:"auto_confirm"`
}

// Load читает конфигурацию из TOML файла
// Незаданные в файле поля получают значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	engine := availability.DefaultConfig()

	windows := make([]WindowConfig, 0, len(engine.Windows))
	for _, w := range engine.Windows {
		windows = append(windows, WindowConfig{Name: w.Name, Hour: w.Hour})
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-bookingslots",
		},
		Calendar: CalendarConfig{
			Timeout: 10,
		},
		Jobs: JobsConfig{
			CalendarSyncCron: "*/10 * * * *",
			ExpireHoldsCron:  "* * * * *",
			Timeout:          60,
		},
		Booking: BookingConfig{
			TimeZone:            engine.TimeZone,
			Windows:             windows,
			ShortLabel:          engine.Durations[0].Label,
			ShortMinutes:        engine.Durations[0].Minutes,
			LongLabel:           engine.Durations[1].Label,
			LongMinutes:         engine.Durations[1].Minutes,
			BufferBeforeMinutes: engine.BufferBeforeMinutes,
			BufferAfterMinutes:  engine.BufferAfterMinutes,
			MaxAdvanceDays:      engine.MaxAdvanceDays,
			SameDayCutoffHour:   engine.SameDayCutoffHour,
			NextDayCutoffHour:   engine.NextDayCutoffHour,
			NextDayEarliestHour: engine.NextDayEarliestHour,
			MinNoticeHours:      engine.MinNoticeHours,
			ClosingHour:         engine.ClosingHour,
			WeekendClosingHour:  engine.WeekendClosingHour,
			HoldTTLMinutes:      30,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envAdminToken); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	if c.Calendar.Enabled && (c.Calendar.URL == "" || c.Calendar.CalendarID == "") {
		return fmt.Errorf("%w: calendar.url and calendar.calendar_id are required when calendar is enabled", ErrInvalidConfig)
	}
	if c.Jobs.Enabled && (c.Jobs.ExpireHoldsCron == "" || (c.Calendar.Enabled && c.Jobs.CalendarSyncCron == "")) {
		return fmt.Errorf("%w: jobs cron expressions are required when jobs are enabled", ErrInvalidConfig)
	}
	for _, p := range placeholderAdminTokens {
		if strings.EqualFold(strings.TrimSpace(c.Admin.Token), p) {
			return fmt.Errorf("%w: admin.token must not be a placeholder value", ErrInvalidConfig)
		}
	}
	if c.Booking.HoldTTLMinutes <= 0 {
		return fmt.Errorf("%w: booking.hold_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.EngineConfig(); err != nil {
		return fmt.Errorf("%w: booking: %v", ErrInvalidConfig, err)
	}
	return nil
}

// EngineConfig конвертирует секцию booking в конфигурацию движка доступности
func (b BookingConfig) EngineConfig() (availability.Config, error) {
	windows := make([]availability.TimeWindow, 0, len(b.Windows))
	for _, w := range b.Windows {
		name := w.Name
		if name == "" {
			name = availability.HourLabel(w.Hour)
		}
		windows = append(windows, availability.TimeWindow{Name: name, Hour: w.Hour})
	}

	var closed []time.Weekday
	for _, s := range b.ClosedWeekdays {
		wd, err := parseWeekday(s)
		if err != nil {
			return availability.Config{}, err
		}
		closed = append(closed, wd)
	}

	cfg := availability.Config{
		TimeZone: b.TimeZone,
		Windows:  windows,
		Durations: []availability.JobDuration{
			{Kind: availability.DurationShort, Label: b.ShortLabel, Minutes: b.ShortMinutes},
			{Kind: availability.DurationLong, Label: b.LongLabel, Minutes: b.LongMinutes},
		},
		BufferBeforeMinutes: b.BufferBeforeMinutes,
		BufferAfterMinutes:  b.BufferAfterMinutes,
		MaxAdvanceDays:      b.MaxAdvanceDays,
		SameDayCutoffHour:   b.SameDayCutoffHour,
		NextDayCutoffHour:   b.NextDayCutoffHour,
		NextDayEarliestHour: b.NextDayEarliestHour,
		MinNoticeHours:      b.MinNoticeHours,
		ClosingHour:         b.ClosingHour,
		WeekendClosingHour:  b.WeekendClosingHour,
		ClosedWeekdays:      closed,
	}

	if err := cfg.Validate(); err != nil {
		return availability.Config{}, err
	}
	return cfg, nil
}

// HoldTTL время жизни неподтвержденного бронирования
func (b BookingConfig) HoldTTL() time.Duration {
	return time.Duration(b.HoldTTLMinutes) * time.Minute
}

func parseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if key == name || key == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
