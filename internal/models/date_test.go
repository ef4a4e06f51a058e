package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-14", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{in: "2025-03-14T10:30:00Z", want: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)},
		{in: "2025-03-14T10:30:00.123Z", want: time.Date(2025, 3, 14, 10, 30, 0, 123000000, time.UTC)},
		{in: "14/03/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
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
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var body struct {
		A *Date `json:"a"`
		B *Date `json:"b"`
		C *Date `json:"c"`
		D *Date `json:"d"`
	}
	raw := `{"a":"2024-12-31","b":null,"c":"","d":"2024-12-31T23:00:00Z"}`
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if body.A.Ptr() == nil || body.A.Year() != 2024 || body.A.Month() != time.December {
		t.Errorf("a = %v", body.A)
	}
	if body.B.Ptr() != nil {
		t.Errorf("null date should be absent")
	}
	if body.C.Ptr() != nil {
		t.Errorf("empty date should be absent")
	}
	if body.D.Ptr() == nil || body.D.Hour() != 23 {
		t.Errorf("d = %v", body.D)
	}

	if err := json.Unmarshal([]byte(`{"a":"tomorrow"}`), &body); err == nil {
		t.Error("expected error for unparseable date")
	}
}
