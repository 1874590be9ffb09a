package dispatcher

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"studio-bridge/internal/jobqueue"
)

func TestConnectionStatusNeverSeen(t *testing.T) {
	q := jobqueue.New()
	d := New(q, 30*time.Second, 15*time.Second)

	env := d.CallTool(context.Background(), "studio_get_connection_status", nil)
	if env.IsError {
		t.Fatalf("status check should never be an error, got %+v", env)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(env.Content[0].Text), &payload); err != nil {
		t.Fatalf("expected JSON payload: %v", err)
	}
	if payload["connected"] != false {
		t.Fatalf("expected connected=false, got %v", payload)
	}
}

func TestConnectionStatusConnected(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 30*time.Second, 15*time.Second)

	env := d.CallTool(context.Background(), "studio_get_connection_status", map[string]any{"client_id": "studio"})
	var payload map[string]any
	json.Unmarshal([]byte(env.Content[0].Text), &payload)
	if payload["connected"] != true {
		t.Fatalf("expected connected=true, got %v", payload)
	}
}

func TestUnknownTool(t *testing.T) {
	q := jobqueue.New()
	d := New(q, 30*time.Second, 15*time.Second)

	env := d.CallTool(context.Background(), "roblox_not_a_real_tool", nil)
	if !env.IsError {
		t.Fatal("expected error envelope for unknown tool")
	}
	if !strings.Contains(env.Content[0].Text, "Unknown tool") {
		t.Fatalf("unexpected message: %s", env.Content[0].Text)
	}
}

func TestNotConnectedRejectsJob(t *testing.T) {
	q := jobqueue.New()
	d := New(q, 30*time.Second, 15*time.Second)

	env := d.CallTool(context.Background(), "roblox_list_services", nil)
	if !env.IsError {
		t.Fatal("expected error envelope when client is not connected")
	}
	if !strings.Contains(env.Content[0].Text, "not connected") {
		t.Fatalf("unexpected message: %s", env.Content[0].Text)
	}
}

func TestSuccessfulRoundTrip(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 2*time.Second, 15*time.Second)

	done := make(chan struct{})
	go func() {
		job, ok := q.WaitForJob("studio", time.Second)
		if !ok {
			t.Error("expected a job to be enqueued")
			close(done)
			return
		}
		if job.Type != "list_services" {
			t.Errorf("expected job_type list_services, got %s", job.Type)
		}
		q.StoreResult(job.JobID, jobqueue.Result{
			JobID:  job.JobID,
			OK:     true,
			Result: json.RawMessage(`{"services":["Workspace","Lighting"]}`),
		})
		close(done)
	}()

	env := d.CallTool(context.Background(), "roblox_list_services", map[string]any{"client_id": "studio"})
	<-done
	if env.IsError {
		t.Fatalf("expected success, got error envelope: %+v", env)
	}
	if !strings.Contains(env.Content[0].Text, "Workspace") {
		t.Fatalf("expected payload to contain Workspace, got %s", env.Content[0].Text)
	}
}

func TestToolErrorResult(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 2*time.Second, 15*time.Second)

	go func() {
		job, _ := q.WaitForJob("studio", time.Second)
		q.StoreResult(job.JobID, jobqueue.Result{JobID: job.JobID, OK: false, Error: "instance not found"})
	}()

	env := d.CallTool(context.Background(), "roblox_get_instance", map[string]any{"client_id": "studio", "path": "Workspace.Nope"})
	if !env.IsError {
		t.Fatal("expected error envelope")
	}
	if env.Content[0].Text != "instance not found" {
		t.Fatalf("expected plugin-supplied error text, got %s", env.Content[0].Text)
	}
}

func TestTimeoutCancelsJob(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 30*time.Millisecond, 15*time.Second)

	env := d.CallTool(context.Background(), "roblox_list_services", map[string]any{"client_id": "studio"})
	if !env.IsError {
		t.Fatal("expected timeout error envelope")
	}
	if !strings.Contains(env.Content[0].Text, "Timed out") {
		t.Fatalf("unexpected message: %s", env.Content[0].Text)
	}
	// The job should have been removed from the mailbox by CancelJob.
	if _, ok := q.WaitForJob("studio", 10*time.Millisecond); ok {
		t.Fatal("expected no job left in mailbox after cancellation")
	}
}

func TestRunCodeArgAliasing(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 2*time.Second, 15*time.Second)

	var gotArgs map[string]any
	go func() {
		job, _ := q.WaitForJob("studio", time.Second)
		gotArgs = job.Args
		q.StoreResult(job.JobID, jobqueue.Result{JobID: job.JobID, OK: true, Result: json.RawMessage(`{}`)})
	}()

	d.CallTool(context.Background(), "roblox_run_code", map[string]any{"client_id": "studio", "script": "print('hi')"})
	time.Sleep(20 * time.Millisecond)

	if gotArgs["code"] != "print('hi')" {
		t.Fatalf("expected script to alias into code, got %v", gotArgs)
	}
}

func TestRunCodePrefersExplicitCode(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 2*time.Second, 15*time.Second)

	var gotArgs map[string]any
	go func() {
		job, _ := q.WaitForJob("studio", time.Second)
		gotArgs = job.Args
		q.StoreResult(job.JobID, jobqueue.Result{JobID: job.JobID, OK: true, Result: json.RawMessage(`{}`)})
	}()

	d.CallTool(context.Background(), "roblox_run_code", map[string]any{
		"client_id": "studio",
		"code":      "explicit",
		"script":    "should be ignored",
	})
	time.Sleep(20 * time.Millisecond)

	if gotArgs["code"] != "explicit" {
		t.Fatalf("explicit code should win over script alias, got %v", gotArgs)
	}
}

func TestRunCodeWithNoAliasGetsExplicitNullCode(t *testing.T) {
	q := jobqueue.New()
	q.MarkSeen("studio")
	d := New(q, 2*time.Second, 15*time.Second)

	var gotArgs map[string]any
	go func() {
		job, _ := q.WaitForJob("studio", time.Second)
		gotArgs = job.Args
		q.StoreResult(job.JobID, jobqueue.Result{JobID: job.JobID, OK: true, Result: json.RawMessage(`{}`)})
	}()

	d.CallTool(context.Background(), "roblox_run_code", map[string]any{"client_id": "studio"})
	time.Sleep(20 * time.Millisecond)

	code, present := gotArgs["code"]
	if !present {
		t.Fatal("expected code key to be present (with a nil value), not absent")
	}
	if code != nil {
		t.Fatalf("expected code to be nil when no alias resolved, got %v", code)
	}
}
