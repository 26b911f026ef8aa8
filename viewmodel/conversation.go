// ABOUTME: Conversation screen: messages with one customer and optimistic sending
// ABOUTME: Sent messages show as provisional until the refetch replaces them
package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/riwora/liststore"
	"github.com/harperreed/riwora/models"
	"github.com/oklog/ulid/v2"
)

// clockSkew is how far behind the client clock the server may stamp the
// confirmed copy of a message we just sent.
const clockSkew = 30 * time.Second

type Conversation struct {
	*List[models.Message]
	CustomerID string

	mu   sync.Mutex
	name string
	env  Env
	now  func() time.Time
}

func NewConversation(env Env, customerID, customerName string) *Conversation {
	env = env.withDefaults()
	c := &Conversation{CustomerID: customerID, name: customerName, env: env, now: time.Now}

	store := liststore.New[models.Message](liststore.WithMatcher(sameMessage))
	c.List = NewList[models.Message](func(ctx context.Context) ([]models.Message, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		c.resolveName(ctx)
		return env.API.Conversation(ctx, uid, customerID), nil
	}, store, WithLogger(env.Logger))
	return c
}

// sameMessage reports whether a server message is the confirmed copy of a
// provisional one. An older identical message, or one without a date, never
// retires a provisional.
func sameMessage(provisional, confirmed models.Message) bool {
	if provisional.Sender != confirmed.Sender ||
		provisional.Receiver != confirmed.Receiver ||
		provisional.Message != confirmed.Message {
		return false
	}
	sent, got := provisional.Time(), confirmed.Time()
	if sent.IsZero() || got.IsZero() {
		return false
	}
	return !got.Before(sent.Add(-clockSkew))
}

// CustomerName is the display name of the other party.
func (c *Conversation) CustomerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Conversation) resolveName(ctx context.Context) {
	if c.CustomerName() != "" {
		return
	}
	cust := c.env.API.Customer(ctx, c.CustomerID)
	if cust == nil {
		return
	}
	c.mu.Lock()
	c.name = cust.FullName()
	c.mu.Unlock()
}

// IsMine reports whether m was sent by the logged-in user rather than the
// customer.
func (c *Conversation) IsMine(m models.Message) bool {
	return m.Sender != c.CustomerID
}

// Send shows text immediately as a provisional message, posts it, and then
// refetches the conversation. Blank text is ignored.
func (c *Conversation) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	uid, err := c.env.Identity.Require()
	if err != nil {
		return err
	}

	correlationID := ulid.Make().String()
	c.AddProvisional(correlationID, models.Message{
		ID:       correlationID,
		Sender:   uid,
		Receiver: c.CustomerID,
		Message:  text,
		Date:     c.now().UTC().Format(time.RFC3339Nano),
	})

	sent, err := c.env.API.SendMessage(ctx, uid, c.CustomerID, text)
	if err != nil {
		c.Discard(correlationID)
		c.env.Logger.Warn("send message failed", "receiver", c.CustomerID, "err", err)
		return err
	}
	if sent.ID != "" {
		c.Confirm(correlationID, sent)
	}

	if err := c.Load(); err != nil && !errors.Is(err, ErrStale) && !errors.Is(err, ErrNotMounted) {
		return err
	}
	return nil
}
