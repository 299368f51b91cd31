package config_test

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/11bDev/yall-sub001/internal/config"
)

func TestGetEnv_Defaults(t *testing.T) {
	if got := config.GetEnv("YALL_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
	t.Setenv("YALL_TEST_SET", "value")
	if got := config.GetEnv("YALL_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("got %q, want value", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("YALL_TEST_INT", "42")
	if got := config.GetEnvInt("YALL_TEST_INT", 7); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	t.Setenv("YALL_TEST_INT", "not a number")
	if got := config.GetEnvInt("YALL_TEST_INT", 7); got != 7 {
		t.Fatalf("got %d, want default 7", got)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("YALL_TEST_LIST", "wss://a.example, wss://b.example ,")
	got := config.GetEnvList("YALL_TEST_LIST")
	if len(got) != 2 || got[0] != "wss://a.example" || got[1] != "wss://b.example" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := config.GetLogLevel(); got != logrus.DebugLevel {
		t.Fatalf("got %v, want debug", got)
	}
	t.Setenv("LOG_LEVEL", "")
	if got := config.GetLogLevel(); got != logrus.InfoLevel {
		t.Fatalf("got %v, want info default", got)
	}
}
