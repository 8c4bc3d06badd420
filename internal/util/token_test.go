package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		header  string
		scheme  string
		want    string
		wantErr error
	}{
		{"bearer", "Bearer abc.def", TokenSchemeBearer, "abc.def", nil},
		{"scheme is case insensitive", "bearer abc", TokenSchemeBearer, "abc", nil},
		{"refresh", "Refresh r1", TokenSchemeRefresh, "r1", nil},
		{"missing header", "", TokenSchemeBearer, "", ErrNoAuthorizationHeader},
		{"no token part", "Bearer", TokenSchemeBearer, "", ErrMalformedAuthHeader},
		{"wrong scheme", "Refresh r1", TokenSchemeBearer, "", errors.New("any")},
		{"blank token", "Bearer   ", TokenSchemeBearer, "", ErrMalformedAuthHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}

			got, err := ReadToken(ctx, tt.scheme)
			if tt.wantErr == nil {
				if err != nil || got != tt.want {
					t.Fatalf("ReadToken() = %q, %v; want %q", got, err, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ReadToken() = %q, want error", got)
			}
			if tt.wantErr == ErrNoAuthorizationHeader || tt.wantErr == ErrMalformedAuthHeader {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadToken() error = %v, want %v", err, tt.wantErr)
				}
			}
		})
	}
}
