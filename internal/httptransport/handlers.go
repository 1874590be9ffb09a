package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"studio-bridge/internal/jobqueue"
)

type handlers struct {
	queue          *jobqueue.Queue
	pollTimeout    time.Duration
	livenessWindow time.Duration
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func clientIDFromQuery(r *http.Request) string {
	id := r.URL.Query().Get("client_id")
	if id == "" {
		return "studio"
	}
	return id
}

// poll is the plugin's long-poll endpoint: it marks the client alive, then
// blocks up to pollTimeout waiting for a job. A timeout with nothing to
// deliver is not an error — job comes back null and the plugin is expected
// to poll again immediately.
func (h *handlers) poll(w http.ResponseWriter, r *http.Request) {
	clientID := clientIDFromQuery(r)
	h.queue.MarkSeen(clientID)

	job, ok := h.queue.WaitForJob(clientID, h.pollTimeout)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "job": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "job": job})
}

// ping is a lightweight heartbeat the plugin can call on a fixed interval
// when it has no job result to push, purely to keep liveness fresh.
func (h *handlers) ping(w http.ResponseWriter, r *http.Request) {
	clientID := clientIDFromQuery(r)
	h.queue.MarkSeen(clientID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "server_time": nowUnix()})
}

// result accepts the plugin's reply to a previously delivered job.
func (h *handlers) result(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobID  string          `json:"job_id"`
		OK     bool            `json:"ok"`
		Error  string          `json:"error"`
		Result json.RawMessage `json:"result"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid_json"})
		return
	}
	if body.JobID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "missing_job_id"})
		return
	}

	h.queue.StoreResult(body.JobID, jobqueue.Result{
		JobID:  body.JobID,
		OK:     body.OK,
		Error:  body.Error,
		Result: body.Result,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// health reports the current wall-clock time as "uptime", matching /ping's
// server_time — both are epoch seconds, not an elapsed duration.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "uptime": nowUnix()})
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not_found"})
}

func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
