package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "HOLOSCOPE_CONFIG"
	logLevelEnv       = "HOLOSCOPE_LOG_LEVEL"
	modelDirEnv       = "HOLOSCOPE_MODEL_DIR"
	adminUsernameEnv  = "ADMIN_USERNAME"
	adminPasswordEnv  = "ADMIN_PASSWORD"
	telegramTokenEnv  = "TELEGRAM_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Имена файлов модели внутри каталога HOLOSCOPE_MODEL_DIR
const (
	PrototxtFile  = "colorization_deploy_v2.prototxt"
	WeightsFile   = "colorization_release_v2.caffemodel"
	ColorBinsFile = "pts_in_hull.npy"
)

type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Storage  StorageConfig  `yaml:"storage"`
	Report   ReportConfig   `yaml:"report"`
	Admin    AdminConfig    `yaml:"admin"`
	Logging  LoggingConfig  `yaml:"logging"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// ModelConfig файлы сети раскрашивания
type ModelConfig struct {
	Prototxt  string `yaml:"prototxt"`
	Weights   string `yaml:"weights"`
	ColorBins string `yaml:"colorBins"`
}

// StorageConfig плоские файлы и рабочий каталог
type StorageConfig struct {
	Users     string `yaml:"users"`
	History   string `yaml:"history"`
	Orgs      string `yaml:"orgs"`
	Workspace string `yaml:"workspace"`
}

type ReportConfig struct {
	Logo            string `yaml:"logo"`
	Footer          string `yaml:"footer"`
	SoftwareVersion string `yaml:"softwareVersion"`
	Compress        *bool  `yaml:"compress"`
}

// CompressEnabled сжатие включено, если не выключено явно
func (r ReportConfig) CompressEnabled() bool {
	return r.Compress == nil || *r.Compress
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TelegramConfig доставка отчётов; пустой токен отключает отправку
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chatId"`
}

// Enabled сообщает, заданы ли токен и чат
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Load собирает настройки: значения по умолчанию, затем YAML из HOLOSCOPE_CONFIG,
// затем переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default настройки, с которыми программа работает без файла конфигурации
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Prototxt:  filepath.Join("model", PrototxtFile),
			Weights:   filepath.Join("model", WeightsFile),
			ColorBins: filepath.Join("model", ColorBinsFile),
		},
		Storage: StorageConfig{
			Users:     "users.txt",
			History:   "login_history.txt",
			Orgs:      "orgs.txt",
			Workspace: ".",
		},
		Report: ReportConfig{
			Logo:            "saglo.jpeg",
			Footer:          "Report generated by SAGLO-Holosoft Software",
			SoftwareVersion: "4.0",
		},
		Admin:   AdminConfig{Username: "admin", Password: "password"},
		Logging: LoggingConfig{Level: "info"},
	}
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if dir := os.Getenv(modelDirEnv); dir != "" {
		c.Model.Prototxt = filepath.Join(dir, PrototxtFile)
		c.Model.Weights = filepath.Join(dir, WeightsFile)
		c.Model.ColorBins = filepath.Join(dir, ColorBinsFile)
	}

	if v := os.Getenv(adminUsernameEnv); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv(adminPasswordEnv); v != "" {
		c.Admin.Password = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", telegramChatIDEnv, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}
