/*-------------------------------------------------------------------------
 *
 * tool.go
 *    Execution tool interface and registry
 *
 * Provides the interface for provider-backed tools (Asana, Gmail) and a
 * registry keyed by (provider, tool name) so the executor never branches
 * on transport details.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/tools/tool.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"strconv"
)

/* Known providers and tool names */
const (
	ProviderAsana  = "asana"
	ProviderGoogle = "google"

	ToolCreateAsanaTask = "create_asana_task"
	ToolSendGmail       = "send_gmail"
)

/* ExecutionTool executes one provider operation with a bearer token and a
   flat parameter mapping. Transport and API failures are folded into the
   returned mapping under an "error" key; Execute never panics and never
   returns a Go error. */
type ExecutionTool interface {
	Name() string
	Provider() string
	RequiredParams() []string
	Execute(ctx context.Context, accessToken string, params map[string]interface{}) map[string]interface{}
}

/* Registry holds execution tools keyed by (provider, tool name) */
type Registry struct {
	tools map[string]ExecutionTool
}

/* NewRegistry creates a registry with the given tools */
func NewRegistry(toolList ...ExecutionTool) *Registry {
	r := &Registry{tools: make(map[string]ExecutionTool)}
	for _, t := range toolList {
		r.Register(t)
	}
	return r
}

/* Register adds a tool to the registry */
func (r *Registry) Register(t ExecutionTool) {
	r.tools[registryKey(t.Provider(), t.Name())] = t
}

/* Lookup finds a tool by provider and tool name. Both must match. */
func (r *Registry) Lookup(provider, name string) (ExecutionTool, bool) {
	t, ok := r.tools[registryKey(provider, name)]
	return t, ok
}

/* ForProvider returns the tools registered for a provider */
func (r *Registry) ForProvider(provider string) []ExecutionTool {
	var out []ExecutionTool
	for _, t := range r.tools {
		if t.Provider() == provider {
			out = append(out, t)
		}
	}
	return out
}

func registryKey(provider, name string) string {
	return provider + "/" + name
}

/* stringParam extracts a string parameter, treating anything missing or
   non-string as empty per the tolerant-parameter contract */
func stringParam(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

/* errorResult folds a local failure into the provider result contract */
func errorResult(err error) map[string]interface{} {
	return map[string]interface{}{"error": err.Error()}
}

/* apiErrorResult folds a non-2xx provider response into the result contract */
func apiErrorResult(prefix string, statusCode int, body []byte) map[string]interface{} {
	return map[string]interface{}{
		"error":   prefix + ": " + strconv.Itoa(statusCode),
		"details": string(body),
	}
}
