package toolcatalog

import "testing"

func TestNoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool, len(All))
	for _, d := range All {
		if seen[d.Name] {
			t.Fatalf("duplicate tool name: %s", d.Name)
		}
		seen[d.Name] = true
	}
}

func TestEveryToolHasJobTypeExceptStatus(t *testing.T) {
	for _, d := range All {
		if d.Name == StatusToolName {
			continue
		}
		if d.JobType == "" {
			t.Errorf("tool %s has no job_type", d.Name)
		}
	}
}

func TestLookupKnownAndUnknown(t *testing.T) {
	if _, ok := Lookup("roblox_run_code"); !ok {
		t.Fatal("expected roblox_run_code to be found")
	}
	if _, ok := Lookup("roblox_does_not_exist"); ok {
		t.Fatal("unknown tool name should not resolve")
	}
}

func TestRunCodeRequiresCode(t *testing.T) {
	d, ok := Lookup("roblox_run_code")
	if !ok {
		t.Fatal("missing roblox_run_code")
	}
	required, _ := d.InputSchema["required"].([]string)
	found := false
	for _, r := range required {
		if r == "code" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'code' in required, got %v", required)
	}
}

func TestConnectionStatusHasNoJobType(t *testing.T) {
	d, ok := Lookup(StatusToolName)
	if !ok {
		t.Fatal("missing status tool")
	}
	if d.JobType != "" {
		t.Fatalf("status tool must be handled locally, got job_type %q", d.JobType)
	}
}
