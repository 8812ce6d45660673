package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"google.golang.org/api/gmail/v1"

	"outreach/internal/domain/outreach"
)

// Client sends outreach mail through the Gmail API instead of SMTP.
type Client struct {
	Srv *gmail.Service
}

func NewClient(srv *gmail.Service) *Client {
	return &Client{Srv: srv}
}

func (c *Client) Send(ctx context.Context, msg outreach.Message) error {
	_, err := c.Srv.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(buildRaw(msg)),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// SenderAddress returns the address of the authorised account.
func (c *Client) SenderAddress(ctx context.Context) (string, error) {
	profile, err := c.Srv.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail profile: %w", err)
	}
	if profile.EmailAddress == "" {
		return "", fmt.Errorf("gmail profile has no email address")
	}
	return profile.EmailAddress, nil
}

// buildRaw renders msg as an RFC 5322 text/plain message. Cc recipients are
// taken from the header by Gmail.
func buildRaw(msg outreach.Message) []byte {
	headers := []string{
		"From: " + msg.From,
		"To: " + msg.To,
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.Cc, ", "))
	}
	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", msg.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
	)

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}
