// host-sim stands in for a browser page host during development: it announces
// itself over MQTT, prints every directive it receives and acks it after a
// short delay.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"

	"vox/internal/config"
	"vox/internal/domain"
	"vox/internal/hostbridge"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.LoadHostSimConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := paho.NewClientOptions().
		AddBroker(cfg.MQTTBrokerURL).
		SetClientID(cfg.MQTTClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetWill(hostbridge.TopicOnline(cfg.MQTTTopicPrefix, cfg.HostID), "0", 1, true)

	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("mqtt connect failed", "error", token.Error())
		os.Exit(1)
	}
	defer client.Disconnect(100)

	directiveTopic := hostbridge.TopicDirectives(cfg.MQTTTopicPrefix, cfg.HostID)
	token := client.Subscribe(directiveTopic, 1, func(_ paho.Client, msg paho.Message) {
		var env domain.DirectiveEnvelope
		if err := json.Unmarshal(msg.Payload(), &env); err != nil {
			logger.Warn("invalid directive payload", "topic", msg.Topic(), "error", err)
			return
		}

		logger.Info("directive received",
			"request_id", env.RequestID,
			"session_id", env.SessionID,
			"kind", env.Directive.Kind,
			"path", env.Directive.Path,
			"narration", env.Narration,
		)

		time.Sleep(cfg.AckDelay)
		ack, _ := json.Marshal(domain.DirectiveAck{RequestID: env.RequestID, OK: true})
		ackTopic := hostbridge.TopicAck(cfg.MQTTTopicPrefix, cfg.HostID, env.RequestID)
		if t := client.Publish(ackTopic, 1, false, ack); t.Wait() && t.Error() != nil {
			logger.Warn("publish ack failed", "error", t.Error())
		}
	})
	if token.Wait() && token.Error() != nil {
		logger.Error("subscribe failed", "topic", directiveTopic, "error", token.Error())
		os.Exit(1)
	}

	onlineTopic := hostbridge.TopicOnline(cfg.MQTTTopicPrefix, cfg.HostID)
	if t := client.Publish(onlineTopic, 1, true, "1"); t.Wait() && t.Error() != nil {
		logger.Error("announce online failed", "error", t.Error())
		os.Exit(1)
	}
	logger.Info("host simulator online", "host_id", cfg.HostID, "broker", cfg.MQTTBrokerURL)

	go func() {
		ticker := time.NewTicker(cfg.HeartbeatInterval)
		defer ticker.Stop()
		heartbeatTopic := hostbridge.TopicHeartbeat(cfg.MQTTTopicPrefix, cfg.HostID)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				client.Publish(heartbeatTopic, 0, false, time.Now().UTC().Format(time.RFC3339))
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	client.Publish(onlineTopic, 1, true, "0").Wait()
	logger.Info("host simulator stopped")
}
