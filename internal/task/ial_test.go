package task

import "testing"

func TestParseIAL(t *testing.T) {
	attrs := ParseIAL(`{: custom-task-status="done" custom-task-priority="high" id="20250101090000-abcdefg"}`)

	if got := attrs["custom-task-status"]; got != "done" {
		t.Errorf("status attr = %q, want %q", got, "done")
	}
	if got := attrs["custom-task-priority"]; got != "high" {
		t.Errorf("priority attr = %q, want %q", got, "high")
	}
	if got := attrs["id"]; got != "20250101090000-abcdefg" {
		t.Errorf("id attr = %q, want %q", got, "20250101090000-abcdefg")
	}
}

func TestParseIAL_Empty(t *testing.T) {
	attrs := ParseIAL("")
	if attrs == nil {
		t.Fatal("expected non-nil map for empty input")
	}
	if len(attrs) != 0 {
		t.Errorf("expected empty map, got %v", attrs)
	}
}

func TestParseIAL_EmptyValue(t *testing.T) {
	attrs := ParseIAL(`{: memo=""}`)
	v, ok := attrs["memo"]
	if !ok {
		t.Fatal("expected memo attribute to be present")
	}
	if v != "" {
		t.Errorf("memo = %q, want empty string", v)
	}
}
