package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/repository"
)

func TestSensorStore_UpdateMergesAndLogs(t *testing.T) {
	f := newFixture(t, defaultSnapshot())
	svc := NewSensorStoreService(f.c)
	ctx := context.Background()

	before, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	after, err := svc.Update(ctx, repository.Document{"pm25": json.RawMessage(`99`), "note": json.RawMessage(`"hi"`)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if string(after["pm25"]) != "99" || string(after["note"]) != `"hi"` {
		t.Fatalf("merge not applied: %v", after)
	}
	if !bytes.Equal(after["rooms"], before["rooms"]) {
		t.Fatalf("rooms must stay byte-identical")
	}
	if f.pub.count() != 1 {
		t.Fatalf("update must be published")
	}

	if len(f.events.appended) != 1 || f.events.appended[0].Type != models.EventUpdate {
		t.Fatalf("events = %+v", f.events.appended)
	}
	meta := f.events.appended[0].Metadata.(map[string]any)
	if !reflect.DeepEqual(meta["keys"], []string{"note", "pm25"}) {
		t.Fatalf("keys = %v", meta["keys"])
	}
}

func TestSensorStore_UpdateRejectsMistypedKey(t *testing.T) {
	f := newFixture(t, defaultSnapshot())
	svc := NewSensorStoreService(f.c)

	_, err := svc.Update(context.Background(), repository.Document{"devices": json.RawMessage(`"on"`)})
	if !errors.Is(err, models.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if len(f.events.appended) != 0 || f.pub.count() != 0 {
		t.Fatalf("rejected update must not be logged or published")
	}
}

func TestSensorStore_Status(t *testing.T) {
	f := newFixture(t, defaultSnapshot())
	svc := NewSensorStoreService(f.c)
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	svc.now = func() time.Time { return at }

	st := svc.Status(context.Background())
	if st.Status != "online" || !st.Timestamp.Equal(at) || st.Timestamp.Location() != time.UTC {
		t.Fatalf("status = %+v", st)
	}
}
