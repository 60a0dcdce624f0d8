package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing {
		t.Errorf("Ping() = %v, want %v", Ping(), DefaultPing)
	}
	if Long() != DefaultLong {
		t.Errorf("Long() = %v, want %v", Long(), DefaultLong)
	}
}

func TestConfigure_ZeroValuesIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Short: 20 * time.Second})

	if Short() != 20*time.Second {
		t.Errorf("Short() = %v, want 20s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default %v", Medium(), DefaultMedium)
	}
}
