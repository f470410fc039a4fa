package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-03-01T09:30:00Z", want: want},
		{in: "2024-03-01T11:30:00+02:00", want: want},
		{in: "2024-03-01T09:30:00", want: want},
		{in: "2024-03-01T09:30:00.000", want: want},
		{in: "2024-03-01 09:30:00", want: want},
		{in: "01/03/2024", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got.Time)
			}
		})
	}
}

func TestTimestampJSON(t *testing.T) {
	var payload struct {
		At *Timestamp `json:"at"`
	}

	if err := json.Unmarshal([]byte(`{"at":null}`), &payload); err != nil || payload.At != nil {
		t.Fatalf("expected null to leave timestamp unset, got %v err=%v", payload.At, err)
	}

	if err := json.Unmarshal([]byte(`{"at":12345}`), &payload); err == nil {
		t.Fatalf("expected error for numeric timestamp")
	}

	if err := json.Unmarshal([]byte(`{"at":"2024-03-01T09:30:00"}`), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(out) != `{"at":"2024-03-01T09:30:00Z"}` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}
