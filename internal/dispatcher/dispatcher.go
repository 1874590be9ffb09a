// Package dispatcher translates a tools/call invocation into a job on the
// queue, waits for its result, and renders either outcome as the envelope
// shape the agent expects back over stdio.
package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"studio-bridge/internal/jobqueue"
	"studio-bridge/internal/log"
	"studio-bridge/internal/toolcatalog"
)

// Content is one block of a tool result's content array. The bridge only
// ever produces "text" blocks.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the shape every tools/call response takes, success or error.
type Envelope struct {
	IsError bool      `json:"isError,omitempty"`
	Content []Content `json:"content"`
}

func textEnvelope(text string) Envelope {
	return Envelope{Content: []Content{{Type: "text", Text: text}}}
}

func errorEnvelope(message string) Envelope {
	return Envelope{IsError: true, Content: []Content{{Type: "text", Text: message}}}
}

// Dispatcher owns the queue it dispatches jobs through.
type Dispatcher struct {
	queue          *jobqueue.Queue
	jobTimeout     time.Duration
	livenessWindow time.Duration
}

// New constructs a Dispatcher.
func New(q *jobqueue.Queue, jobTimeout, livenessWindow time.Duration) *Dispatcher {
	return &Dispatcher{queue: q, jobTimeout: jobTimeout, livenessWindow: livenessWindow}
}

// CallTool resolves name against the catalog and either answers locally
// (the connection-status tool) or enqueues a job for the plugin and blocks
// for its result.
func (d *Dispatcher) CallTool(ctx context.Context, name string, arguments map[string]any) Envelope {
	if name == toolcatalog.StatusToolName {
		return d.connectionStatus(arguments)
	}

	desc, ok := toolcatalog.Lookup(name)
	if !ok {
		return errorEnvelope(fmt.Sprintf("Unknown tool: %s", name))
	}

	clientID := stringArg(arguments, "client_id", "studio")

	if !d.queue.IsConnected(clientID, d.livenessWindow) {
		return errorEnvelope("Studio is not connected. Make sure the Roblox Studio plugin is installed and 'Start Bridge Polling' has been clicked.")
	}

	args := applyArgAliases(desc.JobType, arguments)
	jobID := newJobID()

	job := jobqueue.Job{
		JobID:     jobID,
		Type:      desc.JobType,
		Args:      args,
		CreatedAt: float64(time.Now().UnixNano()) / 1e9,
	}
	d.queue.Enqueue(clientID, job)
	log.WithJob(jobID).Debug("job enqueued", "client_id", clientID, "type", desc.JobType)

	result, ok := d.queue.WaitForResult(jobID, d.jobTimeout)
	if !ok {
		d.queue.CancelJob(jobID)
		log.WithJob(jobID).Warn("job timed out waiting for result")
		return errorEnvelope("Timed out waiting for Studio to respond. Check that the plugin is running and connected.")
	}

	if !result.OK {
		msg := result.Error
		if msg == "" {
			msg = "Studio error"
		}
		return errorEnvelope(msg)
	}

	return successEnvelope(result.Result)
}

// connectionStatus answers studio_get_connection_status without touching
// the queue's mailbox: it only ever reads liveness timestamps, so it can
// never block behind a stuck plugin.
func (d *Dispatcher) connectionStatus(arguments map[string]any) Envelope {
	clientID := stringArg(arguments, "client_id", "studio")

	last, ok := d.queue.GetLastSeen(clientID)
	if !ok {
		return successEnvelope(mustMarshal(map[string]any{
			"connected": false,
			"client_id": clientID,
		}))
	}

	age := time.Since(last)
	payload := map[string]any{
		"connected":         age < d.livenessWindow,
		"client_id":         clientID,
		"last_seen_seconds": roundTo(age.Seconds(), 1),
	}
	return successEnvelope(mustMarshal(payload))
}

// applyArgAliases implements the one documented fallback rule: run_code and
// run_script_in_play_mode accept "script" or "source" as synonyms for
// "code" when "code" itself is absent or empty.
func applyArgAliases(jobType string, arguments map[string]any) map[string]any {
	args := make(map[string]any, len(arguments))
	for k, v := range arguments {
		args[k] = v
	}

	if jobType != "run_code" && jobType != "run_script_in_play_mode" {
		return args
	}

	if s, _ := args["code"].(string); s != "" {
		return args
	}
	if s, ok := args["script"].(string); ok && s != "" {
		args["code"] = s
		return args
	}
	if s, ok := args["source"].(string); ok && s != "" {
		args["code"] = s
		return args
	}
	// Neither alias resolved: match the original bridge's job_args["code"] =
	// None, a present-but-null key rather than an absent one.
	args["code"] = nil
	return args
}

func stringArg(arguments map[string]any, key, fallback string) string {
	if v, ok := arguments[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// newJobID mints an opaque "job_" + 12 hex char id.
func newJobID() string {
	id := uuid.New()
	hex := fmt.Sprintf("%x", id[:])
	return "job_" + hex[:12]
}

func roundTo(v float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(v*mult) / mult
}

func successEnvelope(payload json.RawMessage) Envelope {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	indented, err := indentJSON(payload)
	if err != nil {
		return textEnvelope(string(payload))
	}
	return textEnvelope(string(indented))
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}

// indentJSON pretty-prints payload with a two-space indent without
// HTML-escaping '<', '>' or '&', matching ensure_ascii=False/no-escaping
// semantics from the reference implementation.
func indentJSON(payload json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	// Encode always appends a trailing newline; trim it to match a bare
	// json.MarshalIndent result.
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}
