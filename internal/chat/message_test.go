package chat

import (
	"testing"
)

func TestTranscript_AppendAndLen(t *testing.T) {
	t.Parallel()

	var tr Transcript
	if tr.Len() != 0 {
		t.Fatalf("Len: got %d want 0", tr.Len())
	}

	tr.Append(RoleUser, "1 + 1")
	tr.Append(RoleAssistant, "2")
	if tr.Len() != 2 {
		t.Fatalf("Len: got %d want 2", tr.Len())
	}

	last, ok := tr.Last()
	if !ok {
		t.Fatalf("Last: got ok=false want true")
	}
	if last.Role != RoleAssistant || last.Content != "2" {
		t.Fatalf("Last: got %+v", last)
	}
}

func TestTranscript_LastEmpty(t *testing.T) {
	t.Parallel()

	var tr Transcript
	if _, ok := tr.Last(); ok {
		t.Fatalf("Last on empty transcript: got ok=true want false")
	}
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	t.Parallel()

	var tr Transcript
	tr.Append(RoleUser, "hello")

	msgs := tr.Messages()
	msgs[0].Content = "mutated"

	got, _ := tr.Last()
	if got.Content != "hello" {
		t.Fatalf("transcript mutated through Messages copy: got %q", got.Content)
	}
}

func TestTranscript_String(t *testing.T) {
	t.Parallel()

	var tr Transcript
	tr.Append(RoleSystem, "be brief")
	tr.Append(RoleUser, "2 * 2")

	want := "system: be brief\nuser: 2 * 2\n"
	if got := tr.String(); got != want {
		t.Fatalf("String: got %q want %q", got, want)
	}
}

func TestTranscript_NilSafe(t *testing.T) {
	t.Parallel()

	var tr *Transcript
	tr.Append(RoleUser, "ignored")
	if tr.Len() != 0 {
		t.Fatalf("nil Len: got %d want 0", tr.Len())
	}
	if got := tr.Messages(); got != nil {
		t.Fatalf("nil Messages: got %v want nil", got)
	}
	if got := tr.String(); got != "" {
		t.Fatalf("nil String: got %q want empty", got)
	}
}
