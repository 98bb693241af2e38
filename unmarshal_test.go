package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Server struct {
		Host    string            `config:"host"`
		Port    int               `config:"port"`
		Debug   bool              `config:"debug"`
		Aliases []string          `config:"aliases"`
		Limits  map[string]string `config:"limits"`
	} `config:"server"`
	Untagged struct {
		Name string
	}
	Skipped string `config:"-"`
}

const serverConf = `server:
    host    = example.org
    port    = 8080
    debug   = yes
    aliases (array) = www, web
    limits (hash)   = cpu = 2, mem = 512m

untagged:
    name = lowercased field names match
`

func TestDecode(t *testing.T) {
	cfg, err := loadStrings(t, serverConf, "")
	require.NoError(t, err)

	var out serverConfig
	require.NoError(t, cfg.Decode(&out))

	assert.Equal(t, "example.org", out.Server.Host)
	assert.Equal(t, 8080, out.Server.Port)
	assert.True(t, out.Server.Debug)
	assert.Equal(t, []string{"www", "web"}, out.Server.Aliases)
	assert.Equal(t, map[string]string{"cpu": "2", "mem": "512m"}, out.Server.Limits)
	assert.Equal(t, "lowercased field names match", out.Untagged.Name)
	assert.Empty(t, out.Skipped)
}

func TestDecode_MissingSectionLeavesZero(t *testing.T) {
	cfg, err := loadStrings(t, "other:\n    k = v\n", "")
	require.NoError(t, err)

	var out serverConfig
	require.NoError(t, cfg.Decode(&out))
	assert.Empty(t, out.Server.Host)
	assert.Zero(t, out.Server.Port)
}

func TestDecode_Required(t *testing.T) {
	cfg, err := loadStrings(t, "other:\n    k = v\n", "")
	require.NoError(t, err)

	var out struct {
		Server struct {
			Host string `config:"host"`
		} `config:"server,required"`
	}
	err = cfg.Decode(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required section")
}

func TestDecode_RequiredKeyword(t *testing.T) {
	cfg, err := loadStrings(t, "server:\n    host = h\n", "")
	require.NoError(t, err)

	var out struct {
		Server struct {
			Port int `config:"port,required"`
		} `config:"server"`
	}
	err = cfg.Decode(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required keyword")
}

func TestDecode_BadTarget(t *testing.T) {
	cfg, err := loadStrings(t, "server:\n    host = h\n", "")
	require.NoError(t, err)

	assert.Error(t, cfg.Decode(nil))
	var notPtr serverConfig
	assert.Error(t, cfg.Decode(notPtr))
	s := "not a struct"
	assert.Error(t, cfg.Decode(&s))
}

func TestDecode_BadScalar(t *testing.T) {
	cfg, err := loadStrings(t, "server:\n    port = not-a-number\n", "")
	require.NoError(t, err)

	var out serverConfig
	err = cfg.Decode(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}
