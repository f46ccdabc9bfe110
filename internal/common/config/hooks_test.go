package config

import (
	"testing"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/pkg/lsb"
)

type hookedConfig struct {
	Options     lsb.QueryOption
	Compression pulsar.CompressionType
	Timeout     time.Duration
	Hosts       []string
}

func TestCustomHooks(t *testing.T) {
	v := viper.New()
	v.Set("options", "pend|susp")
	v.Set("compression", "zlib")
	v.Set("timeout", "1m30s")
	v.Set("hosts", "node1,node2")

	var config hookedConfig
	require.NoError(t, v.Unmarshal(&config, CustomHooks...))
	assert.Equal(t, lsb.QueryPendJob|lsb.QuerySuspJob, config.Options)
	assert.Equal(t, pulsar.ZLib, config.Compression)
	assert.Equal(t, 90*time.Second, config.Timeout)
	assert.Equal(t, []string{"node1", "node2"}, config.Hosts)
}

func TestCustomHooks_BadQueryOption(t *testing.T) {
	v := viper.New()
	v.Set("options", "pend|sideways")
	var config hookedConfig
	assert.Error(t, v.Unmarshal(&config, CustomHooks...))
}

func TestParsePulsarCompressionType(t *testing.T) {
	tests := map[string]pulsar.CompressionType{
		"":     pulsar.NoCompression,
		"None": pulsar.NoCompression,
		"LZ4":  pulsar.LZ4,
		"zstd": pulsar.ZSTD,
	}
	for in, expected := range tests {
		actual, err := ParsePulsarCompressionType(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, actual, in)
	}
	_, err := ParsePulsarCompressionType("brotli")
	assert.Error(t, err)
}
