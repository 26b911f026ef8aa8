// ABOUTME: Messaging operations: inbox feed, per-customer conversation, send
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harperreed/riwora/models"
)

// Messages returns every message sent by uid.
func (c *Client) Messages(ctx context.Context, uid string) []models.Message {
	if uid == "" {
		c.missingIdentity("messages")
		return []models.Message{}
	}
	return readList[models.Message](ctx, c, "messages", "/messages", userQuery(uid))
}

func (c *Client) Conversation(ctx context.Context, sender, receiver string) []models.Message {
	if sender == "" {
		c.missingIdentity("conversation")
		return []models.Message{}
	}
	q := url.Values{"sender": {sender}, "receiver": {receiver}}
	return readList[models.Message](ctx, c, "conversation", "/messages/conversation", q)
}

// SendMessage posts content from sender to receiver. The returned message is
// whatever the server echoed and may have an empty id.
func (c *Client) SendMessage(ctx context.Context, sender, receiver, content string) (models.Message, error) {
	if sender == "" {
		return models.Message{}, ErrMissingIdentity
	}
	body := map[string]string{"sender": sender, "receiver": receiver, "content": content}

	var out models.Message
	if err := c.write(ctx, "send message", http.MethodPost, "/messages", body, &out); err != nil {
		return models.Message{}, err
	}
	return out, nil
}
