/*-------------------------------------------------------------------------
 *
 * parser.go
 *    Tolerant parser for model plan output
 *
 * The model's output is unreliable: it may be fenced in a markdown code
 * block, wrapped in an object under varying keys, or not JSON at all.
 * ParsePlanResponse normalizes all of that into a list of action
 * descriptors and never fails; anything unusable degrades to an empty
 * plan.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/agent/parser.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"encoding/json"
	"strings"
)

/* Object keys probed for the action list, in priority order */
var planListKeys = []string{"actions", "plan", "tools"}

/* ParsePlanResponse parses raw model output into action descriptors.
   It never returns an error; any failure yields an empty list. */
func ParsePlanResponse(raw string) []ActionDescriptor {
	text := strings.TrimSpace(raw)

	/* Strip a markdown code fence by dropping the first and last lines,
	   but only when there are more than two lines; a 1-2 line fenced
	   block passes through untouched rather than being emptied. */
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			text = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var value interface{}
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return []ActionDescriptor{}
	}

	switch v := value.(type) {
	case []interface{}:
		return coerceDescriptors(v)
	case map[string]interface{}:
		for _, key := range planListKeys {
			if inner, ok := v[key]; ok {
				if list, ok := inner.([]interface{}); ok {
					return coerceDescriptors(list)
				}
				/* Key present but not a list: unusable */
				return []ActionDescriptor{}
			}
		}
		/* Last resort: first value in the object's own key order that is
		   itself a list. Deliberately permissive and order-dependent on
		   the model's JSON key ordering. */
		if list, ok := firstListValue(text); ok {
			return coerceDescriptors(list)
		}
		return []ActionDescriptor{}
	default:
		return []ActionDescriptor{}
	}
}

/* firstListValue scans a JSON object's values in document order and
   returns the first one that is an array. Go maps do not preserve key
   order, so the scan walks the token stream instead. */
func firstListValue(text string) ([]interface{}, bool) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	for dec.More() {
		/* Key */
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		/* Value */
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		trimmed := strings.TrimSpace(string(value))
		if strings.HasPrefix(trimmed, "[") {
			var list []interface{}
			if err := json.Unmarshal(value, &list); err == nil {
				return list, true
			}
		}
	}
	return nil, false
}

/* coerceDescriptors converts raw list elements into descriptors. Element
   shape is not validated: missing or mistyped tool/provider/parameters
   become empty values per the downstream contract. */
func coerceDescriptors(list []interface{}) []ActionDescriptor {
	descriptors := make([]ActionDescriptor, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]interface{})

		var d ActionDescriptor
		if tool, ok := obj["tool"].(string); ok {
			d.Tool = tool
		}
		if provider, ok := obj["provider"].(string); ok {
			d.Provider = provider
		}
		if params, ok := obj["parameters"].(map[string]interface{}); ok {
			d.Parameters = params
		} else {
			d.Parameters = make(map[string]interface{})
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}
