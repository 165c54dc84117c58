package publisher

import (
	"errors"

	"github.com/rs/zerolog"

	"complaintdesk/internal/metrics"
	"complaintdesk/internal/websocket"
	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

// MemberSource yields a snapshot of the connection ids in a group.
type MemberSource interface {
	MembersOf(group string) []string
}

// ConnectionSource resolves a connection id to a live connection.
type ConnectionSource interface {
	Lookup(id string) (interfaces.Connection, bool)
}

// Publisher fans write events out to every member of the admin room.
// ARCHITECTURAL DISCOVERY: Publish is fire-and-forget. Each recipient gets a
// non-blocking enqueue, so a slow dashboard cannot stall the request that
// triggered the event
type Publisher struct {
	members     MemberSource
	connections ConnectionSource
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

var _ interfaces.Publisher = (*Publisher)(nil)

// New creates a publisher over the given registry and connection pool.
func New(members MemberSource, connections ConnectionSource, m *metrics.Metrics, logger zerolog.Logger) *Publisher {
	return &Publisher{
		members:     members,
		connections: connections,
		metrics:     m,
		logger:      logger.With().Str("component", "publisher").Logger(),
	}
}

// PublishNewComplaint announces a freshly submitted complaint.
func (p *Publisher) PublishNewComplaint(complaint *types.Complaint) {
	if complaint == nil {
		p.logger.Warn().Str("event", types.EventNewComplaint).Msg("nil complaint, nothing published")
		return
	}
	p.publish(types.EventNewComplaint, types.SnapshotOf(complaint))
}

// PublishComplaintUpdate announces a status or priority change.
func (p *Publisher) PublishComplaintUpdate(complaint *types.Complaint) {
	if complaint == nil {
		p.logger.Warn().Str("event", types.EventComplaintUpdate).Msg("nil complaint, nothing published")
		return
	}
	p.publish(types.EventComplaintUpdate, complaint)
}

// PublishStationUpdate announces a station create, update or delete.
func (p *Publisher) PublishStationUpdate(action types.StationAction, station *types.Station) {
	if station == nil {
		p.logger.Warn().Str("event", types.EventStationUpdate).Msg("nil station, nothing published")
		return
	}
	if !types.IsValidStationAction(action) {
		p.logger.Warn().Str("event", types.EventStationUpdate).Str("action", string(action)).
			Err(types.ErrInvalidStationAction).Msg("station update dropped")
		return
	}
	p.publish(types.EventStationUpdate, types.StationUpdatePayload{Action: action, Station: station})
}

// PublishNotification announces a new admin notification.
func (p *Publisher) PublishNotification(notification *types.Notification) {
	if notification == nil {
		p.logger.Warn().Str("event", types.EventNotification).Msg("nil notification, nothing published")
		return
	}
	p.publish(types.EventNotification, notification)
}

// publish marshals once and hands the same frame to every current member.
func (p *Publisher) publish(event string, payload any) {
	p.metrics.EventPublished(event)

	frame, err := types.NewFrame(event, payload)
	if err != nil {
		p.logger.Error().Err(err).Str("event", event).Msg("failed to build frame")
		return
	}

	// TECHNICAL DISCOVERY: Snapshot taken once; connections that join after
	// this point do not see the event and there is no catch-up
	recipients := p.members.MembersOf(types.AdminRoom)
	delivered := 0
	for _, id := range recipients {
		outcome := p.deliver(id, frame)
		p.metrics.Delivery(event, outcome)
		if outcome == metrics.OutcomeDelivered {
			delivered++
		}
	}

	p.logger.Debug().Str("event", event).Int("recipients", len(recipients)).
		Int("delivered", delivered).Msg("event published")
}

// deliver sends to one recipient. Nothing that happens here escapes.
func (p *Publisher) deliver(id string, frame *types.Frame) (outcome string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn().Str("conn_id", id).Str("event", frame.Event).
				Interface("panic", r).Msg("recipient send panicked")
			outcome = metrics.OutcomePanic
		}
	}()

	conn, ok := p.connections.Lookup(id)
	if !ok {
		// Purged between snapshot and lookup.
		p.logger.Debug().Str("conn_id", id).Str("event", frame.Event).Msg("recipient gone")
		return metrics.OutcomeGone
	}

	if err := conn.Send(frame); err != nil {
		outcome = classify(err)
		p.logger.Warn().Err(err).Str("conn_id", id).Str("event", frame.Event).Msg("delivery failed")
		return outcome
	}
	return metrics.OutcomeDelivered
}

func classify(err error) string {
	switch {
	case errors.Is(err, websocket.ErrSendBufferFull):
		return metrics.OutcomeBufferFull
	case errors.Is(err, websocket.ErrConnectionClosed):
		return metrics.OutcomeClosed
	default:
		return metrics.OutcomeError
	}
}

