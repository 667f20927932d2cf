package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"poolbot/internal/schedule"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Operator   OperatorConfig   `yaml:"operator"`
	Pool       PoolConfig       `yaml:"pool"`
	Redis      RedisConfig      `yaml:"redis"`
	Google     GoogleConfig     `yaml:"google"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken  string          `yaml:"bot_token"`
	Debug     bool            `yaml:"debug"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig ограничение входящих событий на одного пользователя.
// PerMinute <= 0 отключает ограничение.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

// OperatorConfig чат оператора. ChatID = 0 означает, что оператор не подключен.
type OperatorConfig struct {
	ChatID int64  `yaml:"chat_id"`
	Phone  string `yaml:"phone"`
}

type PoolConfig struct {
	Name           string               `yaml:"name"`
	Timezone       string               `yaml:"timezone"`
	SlotMinutes    int                  `yaml:"slot_minutes"`
	MinChildAge    int                  `yaml:"min_child_age"`
	RequiredItems  []string             `yaml:"required_items"`
	BookingOptions []string             `yaml:"booking_options"`
	Holidays       []string             `yaml:"holidays"`
	WeeklyHours    map[string]*DayHours `yaml:"weekly_hours"`
}

// DayHours часы работы в конфиге; null в YAML означает выходной.
type DayHours struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	PoolSize  int    `yaml:"pool_size"`
	KeyPrefix string `yaml:"key_prefix"`
	TTLHours  int    `yaml:"ttl_hours"`
}

type GoogleConfig struct {
	GoogleCredentialsFile string `yaml:"credentials_file"`
	BookingSpreadSheetId  string `yaml:"bookings_spreadsheet_id"`
}

// Enabled журнал заявок в Google Sheets включен, если заданы оба параметра.
func (g GoogleConfig) Enabled() bool {
	return g.GoogleCredentialsFile != "" && g.BookingSpreadSheetId != ""
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func Load(configPath string) (*Config, error) {
	// Загружаем .env файл если существует
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse разбирает YAML с подстановкой переменных окружения и заполняет значения по умолчанию.
func Parse(data []byte) (*Config, error) {
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Pool.Timezone == "" {
		c.Pool.Timezone = "Europe/Moscow"
	}
	if c.Pool.SlotMinutes == 0 {
		c.Pool.SlotMinutes = 60
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "poolbot"
	}
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram.bot_token is not set")
	}
	if _, err := c.Schedule(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	return nil
}

// Schedule строит неизменяемое расписание из секции pool.
func (c *Config) Schedule() (*schedule.Schedule, error) {
	loc, err := time.LoadLocation(c.Pool.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Pool.Timezone, err)
	}

	weekly := make(schedule.WeeklyHours, len(c.Pool.WeeklyHours))
	for name, day := range c.Pool.WeeklyHours {
		wd, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		if day == nil {
			weekly[wd] = nil
			continue
		}

		open, err := schedule.ParseClock(day.Open)
		if err != nil {
			return nil, fmt.Errorf("%s open: %w", name, err)
		}
		closeAt, err := schedule.ParseClock(day.Close)
		if err != nil {
			return nil, fmt.Errorf("%s close: %w", name, err)
		}
		weekly[wd] = &schedule.Hours{Open: open, Close: closeAt}
	}

	return schedule.New(schedule.Options{
		Location:    loc,
		Weekly:      weekly,
		Holidays:    c.Pool.Holidays,
		SlotMinutes: c.Pool.SlotMinutes,
	})
}

// TTL срок хранения броней и вопросов в Redis; 0 означает без срока.
func (r RedisConfig) TTL() time.Duration {
	if r.TTLHours <= 0 {
		return 0
	}
	return time.Duration(r.TTLHours) * time.Hour
}
