package util

import (
	"strings"
	"testing"
)

func TestToPaperObjectName(t *testing.T) {
	name, err := ToPaperObjectName("user-1", "../../etc/paper.pdf")
	if err != nil {
		t.Fatalf("failed to build object name: %v", err)
	}

	if !strings.HasPrefix(name, "papers/user-1/") {
		t.Errorf("object name %s is outside the author directory", name)
	}

	if !strings.HasSuffix(name, "_paper.pdf") {
		t.Errorf("object name %s lost the original file name", name)
	}

	other, _ := ToPaperObjectName("user-1", "paper.pdf")
	if other == name {
		t.Errorf("expected unique object names")
	}
}

func TestPaperObjectIdAlphabet(t *testing.T) {
	name, err := ToPaperObjectName("user-1", "paper.pdf")
	if err != nil {
		t.Fatal(err)
	}

	id, _, ok := strings.Cut(strings.TrimPrefix(name, "papers/user-1/"), "_")
	if !ok {
		t.Fatalf("object name %s has no id prefix", name)
	}
	if len(id) != 21 {
		t.Errorf("id %q has %d characters, want 21", id, len(id))
	}
	if strings.Trim(id, objectIDAlphabet) != "" {
		t.Errorf("id %q uses characters outside %q", id, objectIDAlphabet)
	}
}
