// Package events publishes analysis summaries to an MQTT broker so other
// backend services can react without polling. Publishing is optional and
// best effort; the pipelines never block on the broker.
package events

import (
	"encoding/json"
	"path/filepath"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Publisher sends analysis events over MQTT.
type Publisher struct {
	conn      mqtt.Client
	topic     string
	connected atomic.Bool
	log       zerolog.Logger
}

// Options configures the MQTT publisher.
type Options struct {
	BrokerURL string
	ClientID  string
	Topic     string
	Username  string
	Password  string
	Log       zerolog.Logger
}

// event is the published payload.
type event struct {
	Kind      string `json:"kind"`
	Media     string `json:"media"`
	Result    any    `json:"result"`
	Timestamp string `json:"timestamp"`
}

// Connect establishes the broker connection. The client auto-reconnects;
// events arriving while disconnected are dropped.
func Connect(opts Options) (*Publisher, error) {
	p := &Publisher{
		topic: opts.Topic,
		log:   opts.Log.With().Str("component", "events").Logger(),
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.BrokerURL).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOrderMatters(false).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(p.onConnectionLost)

	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}

	p.conn = mqtt.NewClient(clientOpts)
	token := p.conn.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) onConnect(_ mqtt.Client) {
	p.connected.Store(true)
	p.log.Info().Str("topic", p.topic).Msg("mqtt connected")
}

func (p *Publisher) onConnectionLost(_ mqtt.Client, err error) {
	p.connected.Store(false)
	p.log.Warn().Err(err).Msg("mqtt connection lost, will auto-reconnect")
}

// Publish emits one analysis event on <topic>/<kind>. Only the media
// file's base name is published; local paths stay local.
func (p *Publisher) Publish(kind, mediaPath string, result any) {
	if !p.connected.Load() {
		p.log.Debug().Str("kind", kind).Msg("mqtt disconnected, dropping event")
		return
	}

	payload, err := json.Marshal(event{
		Kind:      kind,
		Media:     filepath.Base(mediaPath),
		Result:    result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.log.Error().Err(err).Msg("marshal event")
		return
	}

	token := p.conn.Publish(p.topic+"/"+kind, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			p.log.Warn().Err(err).Str("kind", kind).Msg("mqtt publish failed")
		}
	}()
}

// IsConnected reports the current broker connection state.
func (p *Publisher) IsConnected() bool {
	return p.connected.Load()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.log.Info().Msg("disconnecting mqtt publisher")
	p.conn.Disconnect(1000)
}
