package rvmhost

import "testing"

func TestBundleSerializeRoundTrip(t *testing.T) {
	b := &Bundle{
		Programs:   map[string][]any{"Widget": {"x"}, "Gadget": {"y"}},
		SourceFile: "fixtures/widgets.yaml",
	}

	data, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := DeserializeBundle(data)
	if err != nil {
		t.Fatalf("DeserializeBundle: %v", err)
	}
	if got.SourceFile != b.SourceFile {
		t.Fatalf("got SourceFile %q, want %q", got.SourceFile, b.SourceFile)
	}
	if len(got.Programs) != 2 {
		t.Fatalf("got %d programs, want 2", len(got.Programs))
	}

	prog, ok := got.Program("Widget")
	if !ok || len(prog) != 1 {
		t.Fatalf("got (%+v, %v), want Widget's program", prog, ok)
	}
}

func TestDeserializeBundleRejectsBadMagic(t *testing.T) {
	_, err := DeserializeBundle([]byte("XXXX\x01anything"))
	if err == nil {
		t.Fatalf("expected an error for a bad magic number")
	}
}

func TestDeserializeBundleRejectsUnsupportedVersion(t *testing.T) {
	b := &Bundle{Programs: map[string][]any{}}
	data, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	data[4] = 0xFF // corrupt the version byte

	if _, err := DeserializeBundle(data); err == nil {
		t.Fatalf("expected an error for an unsupported version")
	}
}

func TestDeserializeBundleRejectsShortInput(t *testing.T) {
	if _, err := DeserializeBundle([]byte("RVMB")); err == nil {
		t.Fatalf("expected an error for input shorter than the header")
	}
}

func TestProgramLookupMiss(t *testing.T) {
	b := &Bundle{Programs: map[string][]any{}}
	if _, ok := b.Program("Missing"); ok {
		t.Fatalf("expected a miss for an unregistered program name")
	}
}
