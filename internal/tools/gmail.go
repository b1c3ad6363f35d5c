/*-------------------------------------------------------------------------
 *
 * gmail.go
 *    Gmail send tool
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/gmail.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

/* GmailTool sends mail through the Gmail REST API */
type GmailTool struct {
	baseURL    string
	httpClient *http.Client
}

/* NewGmailTool creates the Gmail send tool */
func NewGmailTool(baseURL string, timeout time.Duration) *GmailTool {
	if baseURL == "" {
		baseURL = "https://gmail.googleapis.com"
	}
	return &GmailTool{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

/* Name returns the tool name */
func (t *GmailTool) Name() string {
	return ToolSendGmail
}

/* Provider returns the provider name */
func (t *GmailTool) Provider() string {
	return ProviderGoogle
}

/* RequiredParams returns the parameter names advertised in the planning prompt */
func (t *GmailTool) RequiredParams() []string {
	return []string{"to", "subject", "body"}
}

/* Execute assembles an RFC 822 message, encodes it base64url as the Gmail
   API requires, and sends it. Non-2xx responses are folded into the result
   mapping as {error, details}. */
func (t *GmailTool) Execute(ctx context.Context, accessToken string, params map[string]interface{}) map[string]interface{} {
	raw := buildRawMessage(
		stringParam(params, "to"),
		stringParam(params, "subject"),
		stringParam(params, "body"),
	)

	body, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return errorResult(err)
	}

	url := t.baseURL + "/gmail/v1/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errorResult(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return errorResult(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(err)
	}

	if resp.StatusCode != http.StatusOK {
		return apiErrorResult("Gmail API Error", resp.StatusCode, respBody)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return errorResult(err)
	}
	return result
}

/* buildRawMessage assembles a minimal RFC 822 text message and encodes it
   base64url (padding kept) per the Gmail API raw-message requirement */
func buildRawMessage(to, subject, body string) string {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return base64.URLEncoding.EncodeToString(msg.Bytes())
}
