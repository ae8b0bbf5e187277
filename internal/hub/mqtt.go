package hub

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// MQTTRelay mirrors config-changed signals to a per-device topic on a broker.
// It is an optional secondary path for installations where players sit behind
// an MQTT broker rather than holding a socket to the server.
type MQTTRelay struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// NewMQTTRelay connects to the broker; paho reconnects on its own afterwards.
func NewMQTTRelay(brokerURL, clientID string) (*MQTTRelay, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTRelay{client: client}, nil
}

// Publish sends the signal to tv/<device_key>/commands without waiting for
// delivery confirmation beyond the broker handoff.
func (r *MQTTRelay) Publish(deviceKey string, payload []byte) error {
	topic := fmt.Sprintf("tv/%s/commands", deviceKey)
	token := r.client.Publish(topic, 1, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (r *MQTTRelay) Close() {
	r.client.Disconnect(250)
}
