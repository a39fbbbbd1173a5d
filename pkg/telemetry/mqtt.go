package telemetry

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	pkgerrors "github.com/pkg/errors"
)

// MQTTPublisher publishes to a real MQTT broker.
type MQTTPublisher struct {
	client paho.Client
}

var _ Publisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to the given broker. Reconnects after broker
// outages are automatic; the initial connect must succeed within the
// timeout.
func NewMQTTPublisher(broker string) (*MQTTPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("touch-timeout").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, pkgerrors.New("broker connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect to broker")
	}

	return &MQTTPublisher{client: client}, nil
}

// Publish sends a state transition, retained so late subscribers see the
// current display state immediately.
func (p *MQTTPublisher) Publish(event Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to format payload")
	}

	token := p.client.Publish(Topic, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return pkgerrors.New("publish timeout")
	}
	return token.Error()
}

// PublishSystem sends a lifecycle event at QoS 1: shutdown notices should
// survive a flaky link.
func (p *MQTTPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to format system payload")
	}

	token := p.client.Publish(TopicSystem, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return pkgerrors.New("publish timeout")
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
