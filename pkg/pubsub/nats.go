// Package pubsub notifies interested parties (e.g. a dashboard) about
// finished races via NATS.
package pubsub

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/gshubitidze/rallysim/pkg/race"
)

const raceFinishedSubject = "rallysim.race.finished"

type NatsPublisher struct {
	conn *nats.Conn
}

var _ race.Publisher = (*NatsPublisher)(nil)

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("rallysim"))
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: conn}, nil
}

func (p *NatsPublisher) PublishRaceFinished(
	_ context.Context,
	msg *race.FinishedMessage,
) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.conn.Publish(raceFinishedSubject, data)
}

func (p *NatsPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain() //nolint:errcheck // best effort on shutdown
	}
}
