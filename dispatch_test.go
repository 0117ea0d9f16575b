package relay

import "testing"

func TestEventFromDispatchReady(t *testing.T) {
	data := []byte(`{"session_id":"abc123","application":{"id":"99","flags":1}}`)

	event := eventFromDispatch(dispatchReady, OpcodeDispatch, data)

	ready, ok := event.(Ready)
	if !ok {
		t.Fatalf("event type = %T, want Ready", event)
	}

	if ready.SessionID != "abc123" {
		t.Fatalf("SessionID = %q, want %q", ready.SessionID, "abc123")
	}
}

func TestEventFromDispatchMessageCreate(t *testing.T) {
	data := []byte(`{"id":"1","channel_id":"2","content":"hi","author":{"id":"3"}}`)

	event := eventFromDispatch(dispatchMessageCreate, OpcodeDispatch, data)

	mc, ok := event.(MessageCreate)
	if !ok {
		t.Fatalf("event type = %T, want MessageCreate", event)
	}

	if mc.Content != "hi" || mc.AuthorID != "3" {
		t.Fatalf("unexpected MessageCreate: %+v", mc)
	}
}

func TestEventFromDispatchUnknownNameNeverFails(t *testing.T) {
	event := eventFromDispatch("SOME_FUTURE_EVENT", OpcodeDispatch, []byte(`{"foo":"bar"}`))

	u, ok := event.(Unknown)
	if !ok {
		t.Fatalf("event type = %T, want Unknown", event)
	}

	if u.Name != "SOME_FUTURE_EVENT" {
		t.Fatalf("Name = %q, want %q", u.Name, "SOME_FUTURE_EVENT")
	}
}

func TestEventFromDispatchMalformedPayloadBecomesUnknown(t *testing.T) {
	event := eventFromDispatch(dispatchReady, OpcodeDispatch, []byte(`not json`))

	if _, ok := event.(Unknown); !ok {
		t.Fatalf("event type = %T, want Unknown on decode failure", event)
	}
}
