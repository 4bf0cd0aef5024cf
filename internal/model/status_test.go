package model

import "testing"

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{input: "pending", want: StatusPending},
		{input: "in_progress", want: StatusInProgress},
		{input: "completed", want: StatusCompleted},
		{input: "cancelled", want: StatusCancelled},
		{input: "on_hold", want: StatusOnHold},
		{input: "Pending", want: StatusPending},
		{input: "  COMPLETED  ", want: StatusCompleted},
		{input: "done", wantErr: true},
		{input: "", wantErr: true},
		{input: "in progress", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseTaskStatus(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTaskStatus(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskStatus(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTaskStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTaskStatusValid(t *testing.T) {
	t.Parallel()

	for _, status := range TaskStatuses() {
		if !status.Valid() {
			t.Errorf("status %q reported invalid", status)
		}
	}

	if TaskStatus("archived").Valid() {
		t.Error("status \"archived\" reported valid")
	}
}
