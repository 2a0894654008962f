package config

import (
	"os"
	"strconv"
	"time"
)

type VoxServerConfig struct {
	HTTPAddr        string
	DBDSN           string
	LeadEndpointURL string
	LeadAPIKey      string
	LeadTimeout     time.Duration
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string
	SettleDelay     time.Duration
	SessionIdleTTL  time.Duration
	ReplyCacheTTL   time.Duration
	SweepInterval   time.Duration
}

type HostSimConfig struct {
	HostID            string
	HeartbeatInterval time.Duration
	AckDelay          time.Duration
	MQTTBrokerURL     string
	MQTTClientID      string
	MQTTUsername      string
	MQTTPassword      string
	MQTTTopicPrefix   string
}

// LoadVoxServerConfig reads everything from environment variables. Only the
// HTTP listener and a SQLite file are needed to run; MQTT and the lead
// endpoint are optional and disabled when their URL is empty.
func LoadVoxServerConfig() VoxServerConfig {
	return VoxServerConfig{
		HTTPAddr:        getenvDefault("VOX_HTTP_ADDR", ":9020"),
		DBDSN:           getenvDefault("DB_DSN", "data/vox.db"),
		LeadEndpointURL: os.Getenv("LEAD_ENDPOINT_URL"),
		LeadAPIKey:      os.Getenv("LEAD_API_KEY"),
		LeadTimeout:     time.Duration(getenvIntDefault("LEAD_TIMEOUT_SECONDS", 5)) * time.Second,
		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenvDefault("VOX_MQTT_CLIENT_ID", "vox-server"),
		MQTTUsername:    os.Getenv("MQTT_USERNAME"),
		MQTTPassword:    os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "vox"),
		SettleDelay:     time.Duration(getenvIntDefault("SETTLE_DELAY_MS", 1200)) * time.Millisecond,
		SessionIdleTTL:  time.Duration(getenvIntDefault("SESSION_IDLE_TTL_SECONDS", 1800)) * time.Second,
		ReplyCacheTTL:   time.Duration(getenvIntDefault("REPLY_CACHE_TTL_SECONDS", 900)) * time.Second,
		SweepInterval:   time.Duration(getenvIntDefault("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

func LoadHostSimConfig() HostSimConfig {
	return HostSimConfig{
		HostID:            getenvDefault("HOST_ID", "host-debug-01"),
		HeartbeatInterval: time.Duration(getenvIntDefault("HOST_HEARTBEAT_INTERVAL_SECONDS", 10)) * time.Second,
		AckDelay:          time.Duration(getenvIntDefault("HOST_ACK_DELAY_MS", 300)) * time.Millisecond,
		MQTTBrokerURL:     getenvDefault("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:      getenvDefault("HOST_MQTT_CLIENT_ID", "host-sim-debug"),
		MQTTUsername:      os.Getenv("MQTT_USERNAME"),
		MQTTPassword:      os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix:   getenvDefault("MQTT_TOPIC_PREFIX", "vox"),
	}
}

func getenvDefault(key, val string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := os.Getenv(key)
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}
