package jsonguard

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refAccepts is the reference verdict: a single JSON document, decoded by
// encoding/json with UseNumber so numbers of arbitrary precision round-trip,
// with nothing but whitespace after it.
func refAccepts(data []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return false
	}
	return dec.Decode(&v) == io.EOF
}

// loneSurrogateEscape reports whether the input contains a \uXXXX escape in
// the surrogate range. encoding/json replaces unpaired surrogates with
// U+FFFD and accepts them; this validator rejects them, matching strict
// parsers. Conformance comparisons skip such inputs.
func loneSurrogateEscape(data []byte) bool {
	lower := bytes.ToLower(data)
	for i := 0; i+3 < len(lower); i++ {
		if lower[i] == '\\' && lower[i+1] == 'u' && lower[i+2] == 'd' &&
			lower[i+3] >= '8' && (lower[i+3] <= '9' || (lower[i+3] >= 'a' && lower[i+3] <= 'f')) {
			return true
		}
	}
	return false
}

var conformanceCorpus = []string{
	`{}`,
	`[]`,
	`{"a":1,"b":[2,3],"c":null}`,
	`"plain"`,
	`""`,
	`0`,
	`-0`,
	`0.0`,
	`1e3`,
	`-12.34E-56`,
	`true`,
	`false`,
	`null`,
	"  [ 1 , 2 ,\t3 ]  ",
	`[[[[[[[[[[]]]]]]]]]]`,
	`{"nested":{"a":{"b":{"c":[1,2,{"d":null}]}}}}`,
	`{"esc":"line\nbreak\ttab\"quote\\slash\/solidus"}`,
	`{"uni":"Aéあ"}`,
	`{"pair":"😀"}`,
	`{"dup":1,"dup":2}`,
	``,
	` `,
	`{`,
	`}`,
	`[`,
	`]`,
	`,`,
	`:`,
	`{]`,
	`[}`,
	`[1,]`,
	`[,1]`,
	`{"a":}`,
	`{"a" 1}`,
	`{"a":1,}`,
	`{,"a":1}`,
	`{1:2}`,
	`{"a":1 "b":2}`,
	`[1 2]`,
	`01`,
	`-`,
	`+1`,
	`1.`,
	`.5`,
	`1e`,
	`1e+`,
	`1e1.2`,
	`"unclosed`,
	`"bad\escape"`,
	`"bad\u12G4"`,
	`tru`,
	`truE`,
	`falsey`,
	`nul`,
	`nan`,
	`Infinity`,
	`1 2`,
	`{} {}`,
	`"a" "b"`,
	"\"ctrl\x01\"",
	"[\"\x7f\"]",
}

// TestConformanceToReference checks accept/reject agreement with the
// reference parser over the corpus, for every reader variant.
func TestConformanceToReference(t *testing.T) {
	for _, input := range conformanceCorpus {
		data := []byte(input)
		want := refAccepts(data)

		for variant, v := range allValidators(data) {
			err := v.Validate()
			if want {
				assert.NoError(t, err, "input %q variant %s", input, variant)
			} else {
				assert.Error(t, err, "input %q variant %s", input, variant)
			}
		}
	}
}

// TestConformanceArbitraryPrecisionDivergence pins the documented deviation:
// numbers beyond native ranges are accepted here even when a float64-based
// decoder rejects them.
func TestConformanceArbitraryPrecisionDivergence(t *testing.T) {
	huge := `[` + strings.Repeat("9", 400) + `, 1e999999999]`

	var v interface{}
	err := json.Unmarshal([]byte(huge), &v)
	require.Error(t, err, "expected the float64-based reference to overflow")

	assert.NoError(t, FromString(huge).Validate())
}

// TestConformanceAcrossParsers cross-checks clearly-valid documents against
// the other parsers the benchmarks compare with.
func TestConformanceAcrossParsers(t *testing.T) {
	valid := []string{
		`{"a":1,"b":[2,3],"c":null}`,
		`{"nested":{"a":{"b":{"c":[1,2,{"d":null}]}}}}`,
		`{"esc":"line\nbreak\ttab\"quote\\slash"}`,
		`{"pair":"😀","uni":"é"}`,
		`[0, -1, 2.5, 1e10, -0.5e-3]`,
	}

	for _, input := range valid {
		data := []byte(input)
		require.NoError(t, FromBytes(data).Validate(), "input %q", input)

		var v1, v2, v3 interface{}
		assert.NoError(t, json.Unmarshal(data, &v1), "encoding/json on %q", input)
		assert.NoError(t, jsoniter.Unmarshal(data, &v2), "jsoniter on %q", input)
		assert.NoError(t, sonic.Unmarshal(data, &v3), "sonic on %q", input)
	}
}
