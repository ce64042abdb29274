package ws

import "log/slog"

// Bridge publishes generation lifecycle events to the WebSocket hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) GenerationStarted(p GenerationStartedPayload) {
	b.broadcast(TypeGenerationStarted, p)
}

func (b *Bridge) NodeGenerated(p NodeGeneratedPayload) {
	b.broadcast(TypeNodeGenerated, p)
}

func (b *Bridge) GenerationDone(p GenerationDonePayload) {
	b.broadcast(TypeGenerationDone, p)
}

func (b *Bridge) broadcast(msgType string, payload interface{}) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		slog.Error("ws: marshaling event", "type", msgType, "err", err)
		return
	}
	b.hub.Broadcast(msg)
}
