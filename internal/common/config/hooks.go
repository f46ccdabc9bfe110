package config

import (
	"reflect"
	"strings"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/openlava/openlava-go/pkg/lsb"
)

var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		QueryOptionHookFunc(),
		PulsarCompressionTypeHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)),
}

// QueryOptionHookFunc decodes strings such as "pend|susp" into an lsb.QueryOption.
func QueryOptionHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(lsb.QueryOption(0)) {
			return data, nil
		}
		return lsb.ParseQueryOption(data.(string))
	}
}

func PulsarCompressionTypeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(pulsar.NoCompression) {
			return data, nil
		}
		return ParsePulsarCompressionType(data.(string))
	}
}

func ParsePulsarCompressionType(s string) (pulsar.CompressionType, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return pulsar.NoCompression, nil
	case "lz4":
		return pulsar.LZ4, nil
	case "zlib":
		return pulsar.ZLib, nil
	case "zstd":
		return pulsar.ZSTD, nil
	}
	return pulsar.NoCompression, errors.Errorf("unknown pulsar compression type %q", s)
}
