package audit

import (
	"context"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	query, args := buildQuery("SELECT COUNT(1)", Filter{Action: ActionLeaveApprove, EntityID: "lr-1"})
	want := "SELECT COUNT(1) FROM audit_events WHERE 1=1 AND action = $1 AND entity_id = $2"
	if query != want {
		t.Fatalf("expected %q, got %q", want, query)
	}
	if len(args) != 2 || args[0] != ActionLeaveApprove || args[1] != "lr-1" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestPayload(t *testing.T) {
	if got, err := payload(nil); err != nil || got != nil {
		t.Fatalf("expected nil payload, got %q %v", got, err)
	}
	got, err := payload(map[string]string{"status": "approved"})
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if string(got) != `{"status":"approved"}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestRecordQuietlyWithoutDatabase(t *testing.T) {
	var s *Service
	s.RecordQuietly(context.Background(), Entry{Action: ActionSalaryCreate})
}
