package env

import "testing"

func TestGetters(t *testing.T) {
	t.Setenv("CONFPORTAL_TEST_STR", "hello")
	t.Setenv("CONFPORTAL_TEST_INT", " 42 ")
	t.Setenv("CONFPORTAL_TEST_BAD_INT", "four")
	t.Setenv("CONFPORTAL_TEST_BOOL", "true")

	if got := GetString("CONFPORTAL_TEST_STR", "x"); got != "hello" {
		t.Errorf("GetString = %q, want hello", got)
	}
	if got := GetString("CONFPORTAL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString missing = %q, want fallback", got)
	}
	if got := GetInt("CONFPORTAL_TEST_INT", 0); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	if got := GetInt("CONFPORTAL_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt with bad value = %d, want fallback 7", got)
	}
	if got := GetBool("CONFPORTAL_TEST_BOOL", false); !got {
		t.Errorf("GetBool = false, want true")
	}
	if got := GetBool("CONFPORTAL_TEST_MISSING", true); !got {
		t.Errorf("GetBool missing = false, want fallback true")
	}
}
