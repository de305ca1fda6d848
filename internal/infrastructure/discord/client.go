package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedConfig "github.com/nitrodesk/nitrodesk/internal/shared/config"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// maxRetryAfter caps how long a single request waits on a 429 before giving up.
const maxRetryAfter = 5 * time.Second

// Client is a minimal Discord REST v10 client. The bot token is passed per
// call because it lives in the settings store and can change at runtime.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg sharedConfig.DiscordConfig, log logger.Interface) *Client {
	baseURL := strings.TrimRight(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://discord.com/api/v10"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
		logger:     log.With("component", "discord.client"),
	}
}

// User is the subset of the Discord user object the service reads.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	GlobalName    string `json:"global_name,omitempty"`
	Discriminator string `json:"discriminator,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}

type Channel struct {
	ID   string `json:"id"`
	Type int    `json:"type"`
}

type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

type allowedMentions struct {
	Parse []string `json:"parse"`
	Users []string `json:"users,omitempty"`
}

type createMessageRequest struct {
	Content         string          `json:"content"`
	AllowedMentions allowedMentions `json:"allowed_mentions"`
}

type errorResponse struct {
	Code       int     `json:"code"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
}

// GetCurrentUser calls GET /users/@me; used to verify a bot token.
func (c *Client) GetCurrentUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/@me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SendChannelMessage posts content to a channel. Only the listed users are
// pinged; @everyone and role mentions in the text are inert.
func (c *Client) SendChannelMessage(ctx context.Context, token, channelID, content string, mentionUserIDs ...string) (*Message, error) {
	var last *Message
	for _, chunk := range splitMessage(content, maxMessageLength) {
		req := createMessageRequest{
			Content:         chunk,
			AllowedMentions: allowedMentions{Parse: []string{}, Users: mentionUserIDs},
		}
		var msg Message
		if err := c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", token, req, &msg); err != nil {
			return nil, err
		}
		last = &msg
	}
	return last, nil
}

// CreateDM opens (or returns the existing) DM channel with a user.
func (c *Client) CreateDM(ctx context.Context, token, userID string) (*Channel, error) {
	var ch Channel
	body := map[string]string{"recipient_id": userID}
	if err := c.do(ctx, http.MethodPost, "/users/@me/channels", token, body, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// SendDirectMessage opens a DM channel with the user and posts content to it.
func (c *Client) SendDirectMessage(ctx context.Context, token, userID, content string) (*Message, error) {
	ch, err := c.CreateDM(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	return c.SendChannelMessage(ctx, token, ch.ID, content)
}

// Deliver posts to channelID when set, mentioning userID; otherwise it DMs the user.
func (c *Client) Deliver(ctx context.Context, token, channelID, userID, content string) error {
	if channelID != "" {
		mention := Mention(userID)
		if !strings.Contains(content, mention) {
			content = mention + " " + content
		}
		_, err := c.SendChannelMessage(ctx, token, channelID, content, userID)
		return err
	}
	_, err := c.SendDirectMessage(ctx, token, userID, content)
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	err := c.send(ctx, method, path, token, payload, out)
	if IsRetryAfter(err) {
		wait := GetRetryAfter(err)
		if wait > maxRetryAfter {
			return err
		}
		c.logger.Warnw("discord rate limited, retrying once", "path", path, "retry_after", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		err = c.send(ctx, method, path, token, payload, out)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path, token string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+token)
	req.Header.Set("User-Agent", "DiscordBot (https://github.com/nitrodesk/nitrodesk, 1.0)")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er errorResponse
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil && json.Unmarshal(data, &er) == nil {
			apiErr.Code = er.Code
			apiErr.RetryAfter = er.RetryAfter
			if er.Message != "" {
				apiErr.Message = er.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
