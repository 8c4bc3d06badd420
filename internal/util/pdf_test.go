package util

import (
	"bytes"
	"os"
	"testing"
)

func TestValidatePdfRejectsGarbage(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("not a pdf"),
		[]byte("%PDF-1.7\nbroken"),
	}

	for _, in := range inputs {
		if _, err := ValidatePdf(bytes.NewReader(in)); err == nil {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestValidatePdfCountsPages(t *testing.T) {
	data, err := os.ReadFile("testdata/one_page.pdf")
	if err != nil {
		t.Fatal(err)
	}

	pages, err := ValidatePdf(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected a valid pdf, got %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}
