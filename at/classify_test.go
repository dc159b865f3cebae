package at_test

import (
	"testing"

	"i4.energy/across/mc20/at"
)

func TestTablesSorted(t *testing.T) {
	tables := map[string]at.Table{
		"NotificationKeywords": at.NotificationKeywords,
		"NotificationTags":     at.NotificationTags,
		"FinalKeywords":        at.FinalKeywords,
		"FinalTags":            at.FinalTags,
	}
	for name, table := range tables {
		if !table.Sorted() {
			t.Errorf("%s is not sorted: %q", name, table)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
		tag      string
		payload  string
	}{
		// Bare keywords
		{name: "Ready", input: "RDY", expected: true},
		{name: "Incoming call", input: "RING", expected: true},
		{name: "Call ready", input: "Call Ready", expected: true},
		{name: "Keyword is case sensitive", input: "ring", expected: false},
		{name: "Keyword prefix", input: "RIN", expected: false},

		// Tagged notifications
		{name: "Registration", input: "+CREG: 1,1", expected: true, tag: "CREG", payload: "1,1"},
		{name: "New message", input: "+CMTI: \"SM\",1", expected: true, tag: "CMTI", payload: "\"SM\",1"},
		{name: "Empty payload", input: "+CFUN:", expected: true, tag: "CFUN", payload: ""},
		{name: "Unknown tag", input: "+CSQ: 15,99", expected: false},
		{name: "Empty tag", input: "+: 1", expected: false},

		// Marker without separator never reaches the tag table
		{name: "Marker without separator", input: "+1,1", expected: false},
		{name: "Tag name without separator", input: "+CREG", expected: false},

		// Replies
		{name: "OK", input: "OK", expected: false},
		{name: "ERROR", input: "ERROR", expected: false},
		{name: "Echo", input: "AT", expected: false},
		{name: "Empty", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := at.Classify(tt.input)
			if ok != tt.expected {
				t.Fatalf("expected %v, got %v for input %q", tt.expected, ok, tt.input)
			}
			if !ok {
				return
			}
			if n.Line != tt.input {
				t.Errorf("expected line %q, got %q", tt.input, n.Line)
			}
			if n.Tag != tt.tag {
				t.Errorf("expected tag %q, got %q", tt.tag, n.Tag)
			}
			if n.Payload != tt.payload {
				t.Errorf("expected payload %q, got %q", tt.payload, n.Payload)
			}
		})
	}
}

func TestNotificationName(t *testing.T) {
	if n, _ := at.Classify("+CREG: 5"); n.Name() != "CREG" {
		t.Errorf("expected CREG, got %q", n.Name())
	}
	if n, _ := at.Classify("RING"); n.Name() != "RING" {
		t.Errorf("expected RING, got %q", n.Name())
	}
}

func TestIsFinal(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"OK", true},
		{"ERROR", true},
		{"NO CARRIER", true},
		{"+CME ERROR: 10", true},
		{"+CMS ERROR: 500", true},
		{"+CME ERROR", false},
		{"+CSQ: 15,99", false},
		{"RING", false},
		{"AT", false},
	}

	for _, tt := range tests {
		if got := at.IsFinal(tt.input); got != tt.expected {
			t.Errorf("IsFinal(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}
