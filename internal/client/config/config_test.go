package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_NoArgs(t *testing.T) {
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
	os.Args = []string{"gophauth-cli"}

	want := &Config{ServerEndpointAddr: DefaultServerAddr, RequestTimeout: 10 * time.Second}
	if diff := cmp.Diff(want, LoadConfig()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })

	path := writeConfig(t, `{"server_endpoint_addr":"json:1","request_timeout":"2s"}`)
	os.Args = []string{"gophauth-cli", "-c", path, "-a", "flag:2"}

	got := LoadConfig()
	assert.Equal(t, "flag:2", got.ServerEndpointAddr)
	assert.Equal(t, 2*time.Second, got.RequestTimeout)
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.NoError(t, c.Validate())

	c.RequestTimeout = 0
	assert.NoError(t, c.Validate())

	c.RequestTimeout = -time.Second
	assert.ErrorContains(t, c.Validate(), "negative")

	c = Config{}
	assert.ErrorContains(t, c.Validate(), "address")
}
