/*-------------------------------------------------------------------------
 *
 * asana.go
 *    Asana task creation tool
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/asana.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

/* AsanaTool creates tasks through the Asana REST API */
type AsanaTool struct {
	baseURL    string
	httpClient *http.Client
}

/* NewAsanaTool creates the Asana task tool */
func NewAsanaTool(baseURL string, timeout time.Duration) *AsanaTool {
	if baseURL == "" {
		baseURL = "https://app.asana.com/api/1.0"
	}
	return &AsanaTool{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

/* Name returns the tool name */
func (t *AsanaTool) Name() string {
	return ToolCreateAsanaTask
}

/* Provider returns the provider name */
func (t *AsanaTool) Provider() string {
	return ProviderAsana
}

/* RequiredParams returns the parameter names advertised in the planning prompt */
func (t *AsanaTool) RequiredParams() []string {
	return []string{"name", "notes", "project_id"}
}

/* Execute creates a task. An empty project_id is omitted from the outbound
   request rather than sent as an empty string. Non-2xx responses are folded
   into the result mapping as {error, details}. */
func (t *AsanaTool) Execute(ctx context.Context, accessToken string, params map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"name":  stringParam(params, "name"),
		"notes": stringParam(params, "notes"),
	}

	if projectID := stringParam(params, "project_id"); projectID != "" {
		data["projects"] = []string{projectID}
	}
	if workspace := stringParam(params, "workspace"); workspace != "" {
		data["workspace"] = workspace
	}
	for _, field := range []string{"due_on", "due_at", "assignee", "parent"} {
		if v := stringParam(params, field); v != "" {
			data[field] = v
		}
	}

	body, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return errorResult(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/tasks", bytes.NewReader(body))
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiErrorResult("API Error", resp.StatusCode, respBody)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return errorResult(err)
	}
	return result
}
