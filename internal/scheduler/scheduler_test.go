package scheduler

import (
	"testing"
	"time"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{input: "00:30", want: ScheduleTime{Hour: 0, Minute: 30}},
		{input: "12:05", want: ScheduleTime{Hour: 12, Minute: 5}},
		{input: "23:59", want: ScheduleTime{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScheduleTime(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScheduleTime(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestShouldRunFiresOncePerMinute(t *testing.T) {
	s := &Scheduler{scheduleTimes: []ScheduleTime{{Hour: 12, Minute: 30}}}

	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	if !s.shouldRun(at) {
		t.Fatal("first check at scheduled time should fire")
	}
	if s.shouldRun(at.Add(10 * time.Second)) {
		t.Error("second check in the same minute must not fire")
	}
	if s.shouldRun(at.Add(time.Minute)) {
		t.Error("12:31 is not a scheduled time")
	}
	// Same time next day fires again.
	if !s.shouldRun(at.AddDate(0, 0, 1)) {
		t.Error("scheduled time on the next day should fire")
	}
}
