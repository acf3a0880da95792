package config

import (
	"testing"
)

func TestSubstituteEnvVars_Simple(t *testing.T) {
	t.Setenv("TEST_VAR_SIMPLE", "hello")

	content, missing := substituteEnvVars("value = ${TEST_VAR_SIMPLE}")
	if content != "value = hello" {
		t.Errorf("expected 'value = hello', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_Missing(t *testing.T) {
	content, missing := substituteEnvVars("a = ${MKVCAT_TEST_NONEXISTENT_VAR_12345}\nb = ${MKVCAT_TEST_NONEXISTENT_VAR_12345}")
	if content != "a = ${MKVCAT_TEST_NONEXISTENT_VAR_12345}\nb = ${MKVCAT_TEST_NONEXISTENT_VAR_12345}" {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 1 || missing[0] != "MKVCAT_TEST_NONEXISTENT_VAR_12345" {
		t.Errorf("expected [MKVCAT_TEST_NONEXISTENT_VAR_12345], got %v", missing)
	}
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	t.Setenv("UNSET_VAR_DEFAULT", "")

	content, missing := substituteEnvVars("value = ${UNSET_VAR_DEFAULT:-default_value}")
	if content != "value = default_value" {
		t.Errorf("expected 'value = default_value', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars with default, got %v", missing)
	}
}

func TestSubstituteEnvVars_SetOverridesDefault(t *testing.T) {
	t.Setenv("SET_VAR_DEFAULT", "real")

	content, _ := substituteEnvVars("value = ${SET_VAR_DEFAULT:-fallback}")
	if content != "value = real" {
		t.Errorf("expected 'value = real', got %q", content)
	}
}
