package ws

import "encoding/json"

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals a payload into a wire-ready message.
func NewEnvelope(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// Server -> Client messages

type GenerationStartedPayload struct {
	Pattern string `json:"pattern"`
	Nodes   int    `json:"nodes"`
	Hours   int    `json:"hours"`
}

type NodeGeneratedPayload struct {
	NodeID      string `json:"node_id"`
	PatternType string `json:"pattern_type"`
	Points      int    `json:"points"`
}

type GenerationDonePayload struct {
	TotalPoints int     `json:"total_points"`
	Nodes       int     `json:"nodes"`
	Hours       int     `json:"hours"`
	TotalKWh    float64 `json:"total_kwh"`
	Anomalies   int     `json:"anomalies"`
	TookMs      int64   `json:"took_ms"`
}

// Message type constants
const (
	TypeGenerationStarted = "generation:started"
	TypeNodeGenerated     = "generation:node"
	TypeGenerationDone    = "generation:done"
)
