package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"clipdate/internal/domain"
	appErrors "clipdate/internal/errors"
)

func TestApplicatorWritesMetadataThenTimes(t *testing.T) {
	writer := &mockWriter{}
	setter := &mockSetter{}
	a := &Applicator{Metadata: writer, Times: setter, Location: time.UTC}
	ts := domain.Timestamp{Year: 2023, Month: 8, Day: 15, Hour: 14, Minute: 30, Second: 22}

	if err := a.Apply(context.Background(), "/v/a.mp4", ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.calls) != 1 || writer.calls[0].value != "2023:08:15 14:30:22+00:00" {
		t.Fatalf("unexpected metadata calls: %+v", writer.calls)
	}
	if !setter.set["/v/a.mp4"].Equal(time.Date(2023, 8, 15, 14, 30, 22, 0, time.UTC)) {
		t.Fatalf("unexpected file time: %v", setter.set["/v/a.mp4"])
	}
}

func TestApplicatorWritesSameInstantInConfiguredZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}
	writer := &mockWriter{}
	setter := &mockSetter{}
	a := &Applicator{Metadata: writer, Times: setter, Location: tokyo}
	ts := domain.Timestamp{Year: 2023, Month: 8, Day: 15, Hour: 14, Minute: 30, Second: 22}

	if err := a.Apply(context.Background(), "/v/a.mp4", ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := writer.calls[0].value; got != "2023:08:15 14:30:22+09:00" {
		t.Fatalf("expected metadata value with offset, got %q", got)
	}
	wantInstant := time.Date(2023, 8, 15, 5, 30, 22, 0, time.UTC)
	if !setter.set["/v/a.mp4"].Equal(wantInstant) {
		t.Fatalf("expected file time %v, got %v", wantInstant, setter.set["/v/a.mp4"].UTC())
	}
}

func TestApplicatorSetsTimesEvenWhenMetadataFails(t *testing.T) {
	writer := &mockWriter{fail: map[string]error{"/v/a.mp4": errors.New("Error: File format error")}}
	setter := &mockSetter{}
	a := &Applicator{Metadata: writer, Times: setter, Location: time.UTC}

	err := a.Apply(context.Background(), "/v/a.mp4", domain.Timestamp{Year: 2023, Month: 1, Day: 1})
	if appErrors.KindOf(err) != appErrors.MetadataWriteFailed {
		t.Fatalf("expected metadata failure, got %v", err)
	}
	if _, ok := setter.set["/v/a.mp4"]; !ok {
		t.Fatalf("expected filesystem times to be set anyway")
	}
}

func TestApplicatorReportsTimestampFailure(t *testing.T) {
	setter := &mockSetter{fail: map[string]error{"/v/a.mp4": errors.New("permission denied")}}
	a := &Applicator{Metadata: &mockWriter{}, Times: setter}

	err := a.Apply(context.Background(), "/v/a.mp4", domain.Timestamp{Year: 2023, Month: 1, Day: 1})
	if appErrors.KindOf(err) != appErrors.TimestampWriteFailed {
		t.Fatalf("expected timestamp failure, got %v", err)
	}
}

func TestApplicatorJoinsBothFailures(t *testing.T) {
	writer := &mockWriter{fail: map[string]error{"/v/a.mp4": errors.New("exit status 1")}}
	setter := &mockSetter{fail: map[string]error{"/v/a.mp4": errors.New("no such file")}}
	a := &Applicator{Metadata: writer, Times: setter}

	err := a.Apply(context.Background(), "/v/a.mp4", domain.Timestamp{Year: 2023, Month: 1, Day: 1})
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) || appErr.Kind != appErrors.MetadataWriteFailed {
		t.Fatalf("expected metadata failure first, got %v", err)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Fatalf("expected two joined errors, got %v", err)
	}
}

func TestApplicatorIsIdempotent(t *testing.T) {
	writer := &mockWriter{}
	setter := &mockSetter{}
	a := &Applicator{Metadata: writer, Times: setter, Location: time.UTC}
	ts := domain.Timestamp{Year: 2024, Month: 1, Day: 1}

	for i := 0; i < 2; i++ {
		if err := a.Apply(context.Background(), "/v/a.insv", ts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if writer.calls[0] != writer.calls[1] {
		t.Fatalf("expected identical writes, got %+v", writer.calls)
	}
	if !setter.set["/v/a.insv"].Equal(ts.Time(time.UTC)) {
		t.Fatalf("unexpected final time %v", setter.set["/v/a.insv"])
	}
}

func TestApplicatorRequiresCollaborators(t *testing.T) {
	var a *Applicator
	if err := a.Apply(context.Background(), "/v/a.mp4", domain.Timestamp{}); err == nil {
		t.Fatalf("expected error for nil applicator")
	}
}
