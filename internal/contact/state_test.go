package contact

import (
	"encoding/json"
	"testing"
)

func TestModeJSONRoundTrip(t *testing.T) {
	for _, mode := range []Mode{Stick, Slip} {
		data, err := json.Marshal(mode)
		if err != nil {
			t.Fatalf("marshal %v: %v", mode, err)
		}

		var got Mode
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != mode {
			t.Errorf("round trip changed %v to %v", mode, got)
		}
	}
}

func TestModeUnmarshalRejectsUnknown(t *testing.T) {
	// A corrupted record must fail loudly, not load as stick.
	for _, data := range []string{`"sticky"`, `""`, `3`, `"unknown"`} {
		var m Mode
		if err := json.Unmarshal([]byte(data), &m); err == nil {
			t.Errorf("unmarshal %s: expected error, got mode %v", data, m)
		}
	}
}
