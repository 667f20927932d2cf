package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
telegram:
  bot_token: ${POOLBOT_TEST_TOKEN}
operator:
  chat_id: ${POOLBOT_TEST_ADMIN}
pool:
  name: Тест
  timezone: Europe/Moscow
  slot_minutes: 30
  holidays: ["2025-01-01"]
  weekly_hours:
    monday: { open: "07:00", close: "22:00" }
    Saturday: { open: "08:00", close: "20:00" }
    sunday: null
`

func TestParse(t *testing.T) {
	t.Setenv("POOLBOT_TEST_TOKEN", "123:abc")
	t.Setenv("POOLBOT_TEST_ADMIN", "777")

	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("env not expanded: %q", cfg.Telegram.BotToken)
	}
	if cfg.Operator.ChatID != 777 {
		t.Errorf("unexpected chat id %d", cfg.Operator.ChatID)
	}
	if cfg.Monitoring.PrometheusPort != 9090 || cfg.Logging.Level != "info" {
		t.Errorf("defaults not applied: %+v %+v", cfg.Monitoring, cfg.Logging)
	}

	s, err := cfg.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if s.SlotDuration() != 30*time.Minute {
		t.Errorf("unexpected slot duration %v", s.SlotDuration())
	}

	loc := s.Location()
	saturday := time.Date(2025, 8, 2, 0, 0, 0, 0, loc)
	if !s.IsOpenOn(saturday) {
		t.Error("weekday names must be case-insensitive")
	}
	sunday := time.Date(2025, 8, 3, 0, 0, 0, 0, loc)
	if s.IsOpenOn(sunday) {
		t.Error("null weekday must be closed")
	}
	tuesday := time.Date(2025, 8, 5, 0, 0, 0, 0, loc)
	if s.IsOpenOn(tuesday) {
		t.Error("absent weekday must be closed")
	}
	if !s.IsHoliday(time.Date(2025, 1, 1, 0, 0, 0, 0, loc)) {
		t.Error("holiday not loaded")
	}
}

func TestParse_MissingOperatorIsZero(t *testing.T) {
	t.Setenv("POOLBOT_TEST_TOKEN", "123:abc")
	t.Setenv("POOLBOT_TEST_ADMIN", "")

	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Operator.ChatID != 0 {
		t.Errorf("expected operator to be unset, got %d", cfg.Operator.ChatID)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing token",
			yaml:    "pool:\n  timezone: UTC\n",
			wantErr: "bot_token",
		},
		{
			name:    "bad timezone",
			yaml:    "telegram: {bot_token: x}\npool:\n  timezone: Mars/Olympus\n",
			wantErr: "timezone",
		},
		{
			name:    "open after close",
			yaml:    "telegram: {bot_token: x}\npool:\n  weekly_hours:\n    monday: {open: \"22:00\", close: \"07:00\"}\n",
			wantErr: "open time is after close time",
		},
		{
			name:    "bad clock",
			yaml:    "telegram: {bot_token: x}\npool:\n  weekly_hours:\n    monday: {open: \"7am\", close: \"22:00\"}\n",
			wantErr: "invalid clock time",
		},
		{
			name:    "unknown weekday",
			yaml:    "telegram: {bot_token: x}\npool:\n  weekly_hours:\n    funday: {open: \"07:00\", close: \"22:00\"}\n",
			wantErr: "unknown weekday",
		},
		{
			name:    "negative slot",
			yaml:    "telegram: {bot_token: x}\npool:\n  slot_minutes: -15\n",
			wantErr: "slot duration must be positive",
		},
		{
			name:    "bad holiday",
			yaml:    "telegram: {bot_token: x}\npool:\n  holidays: [\"31.12.2025\"]\n",
			wantErr: "invalid holiday date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("telegram: {bot_token: file-token}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "file-token" {
		t.Errorf("unexpected token %q", cfg.Telegram.BotToken)
	}
}

func TestRedisConfig_TTL(t *testing.T) {
	tests := []struct {
		hours int
		want  time.Duration
	}{
		{0, 0},
		{-5, 0},
		{720, 720 * time.Hour},
	}
	for _, tt := range tests {
		if got := (RedisConfig{TTLHours: tt.hours}).TTL(); got != tt.want {
			t.Errorf("TTL(%d) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}
