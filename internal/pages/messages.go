package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/logging"
)

type Conversation struct {
	ID      string `json:"id"`
	PeerID  string `json:"peerId"`
	Peer    string `json:"peer"`
	Updated string `json:"updatedAt,omitempty"`
}

type Message struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// newTicker is a test seam around time.NewTicker.
var newTicker = func(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Messages backs the conversation view. While a conversation is open it
// polls for new messages on a fixed interval; the poll is torn down when
// the view is left or the conversation switches.
type Messages struct {
	api      api.Client
	log      logging.Logger
	interval time.Duration
}

func NewMessages(client api.Client, interval time.Duration, log logging.Logger) *Messages {
	return &Messages{api: client, log: log, interval: interval}
}

func (m *Messages) Conversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	if err := m.api.Get(ctx, "/messages/conversations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Messages) List(ctx context.Context, conversationID string) ([]Message, error) {
	var out []Message
	if err := m.api.Get(ctx, "/messages/conversations/"+conversationID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Messages) Send(ctx context.Context, conversationID, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required: %w", common.ErrValidation)
	}
	return m.api.Post(ctx, "/messages/conversations/"+conversationID, map[string]string{"text": text}, nil)
}

// Poll is a running message poll. Stop is idempotent and tears the
// interval down deterministically.
type Poll struct {
	once sync.Once
	stop func()
	done chan struct{}
}

func (p *Poll) Stop() {
	p.once.Do(func() {
		p.stop()
		close(p.done)
	})
}

// StartPoll fetches the conversation on every tick and invokes onUpdate
// only when the serialized payload differs from the previous fetch, so an
// unchanged conversation does not re-render.
func (m *Messages) StartPoll(ctx context.Context, conversationID string, onUpdate func([]Message)) *Poll {
	tick, stopTick := newTicker(m.interval)
	p := &Poll{stop: stopTick, done: make(chan struct{})}

	go func() {
		var last string
		for {
			select {
			case <-p.done:
				return
			case <-ctx.Done():
				return
			case <-tick:
				msgs, err := m.List(ctx, conversationID)
				if err != nil {
					m.log.Warn(ctx, "message poll failed", "conversation", conversationID, "error", err)
					continue
				}
				raw, err := json.Marshal(msgs)
				if err != nil {
					continue
				}
				if s := string(raw); s != last {
					last = s
					onUpdate(msgs)
				}
			}
		}
	}()

	return p
}
