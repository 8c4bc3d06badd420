package util

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildResponseFailed(t *testing.T) {
	resp := BuildResponseFailed("", errors.New("boom"), nil)
	if resp.Success || resp.Message != "Request unsuccessful" {
		t.Fatalf("unexpected response %+v", resp)
	}

	apiErrors, ok := resp.Errors.([]ApiError)
	if !ok || len(apiErrors) != 1 || apiErrors[0].Message != "boom" {
		t.Errorf("errors = %#v", resp.Errors)
	}

	resp = BuildResponseFailed("Invalid request", []ApiError{{Field: "title", Message: "title is required"}}, nil)
	if got := resp.Errors.([]ApiError); got[0].Field != "title" {
		t.Errorf("errors were rewritten: %#v", got)
	}
}

func TestPage(t *testing.T) {
	h := Page(21, 2, 10, gin.H{"papers": []string{"a"}})
	if h["totalPage"] != 3 || h["page"] != uint(2) || h["total"] != int64(21) {
		t.Errorf("unexpected page %v", h)
	}
	if _, ok := h["papers"]; !ok {
		t.Error("extra keys were dropped")
	}
}
