package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Events EventsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, CORS: loadCORSConfig(), Events: events}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr      string
	WSEnabled bool
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	wsEnabled, err := parseBoolEnv("WS_ENABLED", true)
	if err != nil {
		return ServerConfig{}, err
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		return ServerConfig{Addr: port, WSEnabled: wsEnabled}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, WSEnabled: wsEnabled}, nil
}

// CORSConfig 描述跨域访问配置。
type CORSConfig struct {
	AllowedOrigins []string
}

func loadCORSConfig() CORSConfig {
	raw := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{AllowedOrigins: origins}
}

// EventsConfig 描述消息事件推送 (NATS) 配置。
type EventsConfig struct {
	NATSURL       string
	SubjectPrefix string
}

// Enabled 表示是否配置了 NATS 地址。
func (c EventsConfig) Enabled() bool {
	return c.NATSURL != ""
}

func loadEventsConfig() (EventsConfig, error) {
	prefix := getEnvOrDefault("NATS_SUBJECT_PREFIX", "chatbot.turns")
	if strings.ContainsAny(prefix, " *>") {
		return EventsConfig{}, fmt.Errorf("invalid NATS_SUBJECT_PREFIX value: %q", prefix)
	}

	return EventsConfig{
		NATSURL:       strings.TrimSpace(os.Getenv("NATS_URL")),
		SubjectPrefix: prefix,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
