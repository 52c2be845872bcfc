package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 DAVBIN_WEBDAV_MAX_MULTISTATUS
const EnvPrefix = "DAVBIN"

// Config 应用配置结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	WebDAV  WebDAVConfig  `mapstructure:"webdav"`
	Echo    EchoConfig    `mapstructure:"echo"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// WebDAVConfig 模拟器配置
type WebDAVConfig struct {
	PathPrefix         string        `mapstructure:"path_prefix"`
	MaxMultistatus     int           `mapstructure:"max_multistatus"`
	DefaultLockOwner   string        `mapstructure:"default_lock_owner"`
	DefaultLockTimeout time.Duration `mapstructure:"default_lock_timeout"`
}

// EchoConfig 回显端点配置
type EchoConfig struct {
	PathPrefix string `mapstructure:"path_prefix"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 加载配置：默认值 < config.yaml < .env < 环境变量
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom 使用给定的 viper 实例和 .env 路径加载配置，便于测试
func LoadFrom(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("加载 %s 失败: %w", envFile, err)
		}
	}

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/davbin")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("webdav.path_prefix", "/webdav")
	v.SetDefault("webdav.max_multistatus", 10)
	v.SetDefault("webdav.default_lock_owner", "davbin")
	v.SetDefault("webdav.default_lock_timeout", 120*time.Second)
	v.SetDefault("echo.path_prefix", "/anything")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.WebDAV.MaxMultistatus < 1 {
		return fmt.Errorf("webdav.max_multistatus 必须大于0, 当前为 %d", c.WebDAV.MaxMultistatus)
	}
	if !strings.HasPrefix(c.WebDAV.PathPrefix, "/") {
		return fmt.Errorf("webdav.path_prefix 必须以 / 开头: %q", c.WebDAV.PathPrefix)
	}
	if c.Echo.PathPrefix != "" && !strings.HasPrefix(c.Echo.PathPrefix, "/") {
		return fmt.Errorf("echo.path_prefix 必须以 / 开头: %q", c.Echo.PathPrefix)
	}
	if c.WebDAV.DefaultLockTimeout <= 0 {
		return fmt.Errorf("webdav.default_lock_timeout 必须大于0")
	}
	return nil
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production" || c.Server.Mode == "release"
}

// GetGINMode 获取Gin模式
func (c *Config) GetGINMode() string {
	switch c.Server.Mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
