package hostbridge

import "testing"

func TestParseHostIDRoundTrip(t *testing.T) {
	topic := TopicAck("vox", "host-42", "req-abc")
	hostID, err := ParseHostID(topic, "vox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hostID != "host-42" {
		t.Fatalf("expected host-42, got %s", hostID)
	}
	if got := ParseRequestID(topic); got != "req-abc" {
		t.Fatalf("expected req-abc, got %s", got)
	}
}

func TestParseHostIDMultiSegmentPrefix(t *testing.T) {
	topic := TopicHeartbeat("org/vox", "host-1")
	hostID, err := ParseHostID(topic, "org/vox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hostID != "host-1" {
		t.Fatalf("expected host-1, got %s", hostID)
	}
}

func TestParseHostIDRejectsForeignTopics(t *testing.T) {
	cases := []string{
		"other/host/h1/online",
		"vox/session/h1/online",
		"vox/host",
	}
	for _, topic := range cases {
		if _, err := ParseHostID(topic, "vox"); err == nil {
			t.Fatalf("expected error for topic %q", topic)
		}
	}
}
