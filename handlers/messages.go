// ABOUTME: Messaging MCP tool handlers
// ABOUTME: Implements list_inbox, get_conversation, and send_message
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MessageHandlers struct {
	env viewmodel.Env
}

func NewMessageHandlers(env viewmodel.Env) *MessageHandlers {
	return &MessageHandlers{env: env}
}

type InboxOutput struct {
	Threads []models.InboxEntry `json:"threads"`
}

func (h *MessageHandlers) ListInbox(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, InboxOutput, error) {
	items, err := loadList(ctx, viewmodel.NewInbox(h.env).List)
	if err != nil {
		return nil, InboxOutput{}, err
	}
	return nil, InboxOutput{Threads: items}, nil
}

type ConversationInput struct {
	CustomerID string `json:"customer_id" jsonschema:"Customer ID (required)"`
}

type ConversationOutput struct {
	CustomerName string           `json:"customer_name"`
	Messages     []models.Message `json:"messages"`
}

func (h *MessageHandlers) GetConversation(ctx context.Context, _ *mcp.CallToolRequest, input ConversationInput) (*mcp.CallToolResult, ConversationOutput, error) {
	if input.CustomerID == "" {
		return nil, ConversationOutput{}, fmt.Errorf("customer_id is required")
	}
	c := viewmodel.NewConversation(h.env, input.CustomerID, "")
	items, err := loadList(ctx, c.List)
	if err != nil {
		return nil, ConversationOutput{}, err
	}
	return nil, ConversationOutput{CustomerName: c.CustomerName(), Messages: items}, nil
}

type SendMessageInput struct {
	CustomerID string `json:"customer_id" jsonschema:"Recipient customer ID (required)"`
	Content    string `json:"content" jsonschema:"Message text (required)"`
}

func (h *MessageHandlers) SendMessage(ctx context.Context, _ *mcp.CallToolRequest, input SendMessageInput) (*mcp.CallToolResult, ConversationOutput, error) {
	if input.CustomerID == "" {
		return nil, ConversationOutput{}, fmt.Errorf("customer_id is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ConversationOutput{}, fmt.Errorf("content is required")
	}

	c := viewmodel.NewConversation(h.env, input.CustomerID, "")
	defer c.Close()
	if err := c.Mount(ctx); err != nil {
		return nil, ConversationOutput{}, err
	}
	defer c.Unmount()
	if err := c.Send(ctx, input.Content); err != nil {
		return nil, ConversationOutput{}, fmt.Errorf("failed to send message: %w", err)
	}
	return nil, ConversationOutput{CustomerName: c.CustomerName(), Messages: c.Items()}, nil
}
