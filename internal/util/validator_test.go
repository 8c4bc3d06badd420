package util

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type validatorSample struct {
	Title string `validate:"strNotEmpty,cmin=3,cmax=10"`
}

func TestCustomValidations(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("RegisterCustomValidations: %v", err)
	}

	tests := []struct {
		title   string
		wantErr bool
		wantTag string
	}{
		{"Paper", false, ""},
		{"   ", true, "strNotEmpty"},
		{"  ab  ", true, "cmin"},
		{"a very long paper title", true, "cmax"},
	}

	for _, tt := range tests {
		err := v.Struct(validatorSample{Title: tt.title})
		if (err != nil) != tt.wantErr {
			t.Fatalf("title %q: err = %v, wantErr %v", tt.title, err, tt.wantErr)
		}
		if err == nil {
			continue
		}

		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			t.Fatalf("expected validation errors, got %T", err)
		}
		if ve[0].Tag() != tt.wantTag {
			t.Errorf("title %q: tag = %s, want %s", tt.title, ve[0].Tag(), tt.wantTag)
		}

		msgs := GenerateErrorMessages(err, map[string]string{"Title": "title"})
		if len(msgs) != 1 || msgs[0].Field != "title" {
			t.Errorf("title %q: unexpected messages %+v", tt.title, msgs)
		}
	}
}

func TestGenerateErrorMessagesFallback(t *testing.T) {
	msgs := GenerateErrorMessages(errors.New("boom"), "paperId")
	if len(msgs) != 1 || msgs[0].Field != "paperId" || msgs[0].Message != "boom" {
		t.Errorf("unexpected messages %+v", msgs)
	}

	msgs = GenerateErrorMessages(gorm.ErrRecordNotFound)
	if msgs[0].Message != "Record not found" {
		t.Errorf("unexpected not found message %+v", msgs)
	}
}

type jsonSample struct {
	PaperTitle string `json:"paperTitle,omitempty" validate:"required"`
	Abstract   string `validate:"required"`
}

func TestValidationErrorsUseJsonNames(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("RegisterCustomValidations: %v", err)
	}

	msgs := GenerateErrorMessages(v.Struct(jsonSample{}))
	if len(msgs) != 2 {
		t.Fatalf("messages = %+v, want 2", msgs)
	}
	if msgs[0].Field != "paperTitle" || msgs[0].Message != "paperTitle is required" {
		t.Errorf("first = %+v", msgs[0])
	}
	if msgs[1].Field != "Abstract" {
		t.Errorf("second field = %s, want Abstract", msgs[1].Field)
	}
}
