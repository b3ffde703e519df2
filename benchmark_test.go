package jsonguard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
)

// Benchmark data sets
var (
	smallJSON = []byte(`{"name": "test", "value": 42, "active": true}`)

	mediumJSON = []byte(`{
		"users": [
			{"id": 1, "name": "Alice", "email": "alice@example.com"},
			{"id": 2, "name": "Bob", "email": "bob@example.com"},
			{"id": 3, "name": "Charlie", "email": "charlie@example.com"}
		],
		"settings": {
			"theme": "dark",
			"notifications": true,
			"language": "en"
		}
	}`)

	largeJSON = []byte(`{
		"data": [` + strings.Repeat(`{"field1": "value1", "field2": 123, "field3": true},`, 1000) + `
			{"field1": "last", "field2": 999, "field3": false}
		],
		"metadata": {
			"total": 1001,
			"created": "2023-01-01T00:00:00Z",
			"version": "1.0"
		}
	}`)

	deeplyNestedJSON = func() []byte {
		nested := `"value"`
		for i := 0; i < 50; i++ {
			nested = `{"level` + string(rune('0'+i%10)) + `": ` + nested + `}`
		}
		return []byte(nested)
	}()
)

func benchmarkValidate(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := FromBytes(data).Validate(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateSmall(b *testing.B)        { benchmarkValidate(b, smallJSON) }
func BenchmarkValidateMedium(b *testing.B)       { benchmarkValidate(b, mediumJSON) }
func BenchmarkValidateLarge(b *testing.B)        { benchmarkValidate(b, largeJSON) }
func BenchmarkValidateDeeplyNested(b *testing.B) { benchmarkValidate(b, deeplyNestedJSON) }

func BenchmarkValidateWithLimits(b *testing.B) {
	opts := []Option{
		WithMaxDepth(64),
		WithMaxStringLength(1 << 10),
		WithMaxArrayEntries(1 << 16),
		WithMaxObjectEntries(1 << 16),
		WithMaxObjectEntryNameLength(256),
		WithDuplicateObjectEntryNames(false),
	}

	b.SetBytes(int64(len(largeJSON)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := FromBytes(largeJSON, opts...).Validate(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateReader(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := FromReader(bytes.NewReader(largeJSON)).Validate(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateSteps(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		v := FromBytes(largeJSON)
		for {
			finished, err := v.ValidateWithSteps(1000)
			if err != nil {
				b.Fatal(err)
			}
			if finished {
				break
			}
		}
	}
}

// BenchmarkValidateZstdStream validates straight off a decompressing reader,
// the shape of a service checking compressed payloads before inflating them
// for the real decoder.
func BenchmarkValidateZstdStream(b *testing.B) {
	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	if err != nil {
		b.Fatal(err)
	}
	if _, err := enc.Write(largeJSON); err != nil {
		b.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(largeJSON)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		dec, err := zstd.NewReader(bytes.NewReader(compressed.Bytes()))
		if err != nil {
			b.Fatal(err)
		}
		if err := FromReader(dec, WithBufferSize(1<<16)).Validate(); err != nil {
			b.Fatal(err)
		}
		dec.Close()
	}
}

// Reference parsers, for comparison: encoding/json, jsoniter and sonic
// materialise the document; jsonparser walks the top-level object without
// building values.

func benchmarkEncodingJSON(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := json.Unmarshal(data, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodingJSONSmall(b *testing.B) { benchmarkEncodingJSON(b, smallJSON) }
func BenchmarkEncodingJSONLarge(b *testing.B) { benchmarkEncodingJSON(b, largeJSON) }

func benchmarkJsoniter(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	api := jsoniter.ConfigCompatibleWithStandardLibrary
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := api.Unmarshal(data, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJsoniterSmall(b *testing.B) { benchmarkJsoniter(b, smallJSON) }
func BenchmarkJsoniterLarge(b *testing.B) { benchmarkJsoniter(b, largeJSON) }

func benchmarkSonic(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := sonic.Unmarshal(data, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSonicSmall(b *testing.B) { benchmarkSonic(b, smallJSON) }
func BenchmarkSonicLarge(b *testing.B) { benchmarkSonic(b, largeJSON) }

func benchmarkJsonparser(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		err := jsonparser.ObjectEach(data, func(_, _ []byte, _ jsonparser.ValueType, _ int) error {
			return nil
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJsonparserSmall(b *testing.B) { benchmarkJsonparser(b, smallJSON) }
func BenchmarkJsonparserLarge(b *testing.B) { benchmarkJsonparser(b, largeJSON) }
