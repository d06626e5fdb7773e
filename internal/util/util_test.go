package util

import "testing"

func TestGenerateName(t *testing.T) {
	name := GenerateName()
	if len(name) < 5 {
		t.Fatalf("expected a name of at least 5 chars, got %q", name)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestAvailablePort(t *testing.T) {
	port, err := AvailablePort()
	if err != nil {
		t.Fatal(err)
	}
	if port <= 0 {
		t.Fatalf("expected a positive port, got %d", port)
	}
}
