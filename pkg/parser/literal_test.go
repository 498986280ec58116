package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntDigits(t *testing.T) {
	cases := map[string]string{
		"42":                    "42",
		"1_000":                 "1000",
		"7u8":                   "7",
		"0x1F":                  "31",
		"0xff_i64":              "255",
		"0o17":                  "15",
		"0b1010_1010":           "170",
		"340282366920938463463": "340282366920938463463",
	}
	for in, want := range cases {
		assert.Equal(t, want, intDigits(in), "literal %s", in)
	}
}

func TestFloatDigits(t *testing.T) {
	assert.Equal(t, "1.5", floatDigits("1.5"))
	assert.Equal(t, "1.5", floatDigits("1.5f32"))
	assert.Equal(t, "1000.25e3", floatDigits("1_000.25e3f64"))
}

func TestIsSuffixedFloat(t *testing.T) {
	assert.True(t, isSuffixedFloat("1f32"))
	assert.True(t, isSuffixedFloat("2_0f64"))
	assert.False(t, isSuffixedFloat("0x1f32"))
	assert.False(t, isSuffixedFloat("0b1f64"))
	assert.False(t, isSuffixedFloat("7u8"))
	assert.False(t, isSuffixedFloat("0"))
}

func TestStringValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`"plain"`, "plain", true},
		{`"a\nb"`, "a\nb", true},
		{`"quote \" and \\"`, `quote " and \`, true},
		{`"\x41\u{1F600}"`, "A\U0001F600", true},
		{"\"line \\\n    continued\"", "line continued", true},
		{`r"raw\n"`, `raw\n`, true},
		{`r##"a "# b"##`, `a "# b`, true},
		{`b"bytes"`, "", false},
		{`c"cstr"`, "", false},
		{`"bad \q"`, "", false},
	}
	for _, tc := range cases {
		got, ok := stringValue(tc.in)
		assert.Equal(t, tc.ok, ok, "literal %s", tc.in)
		assert.Equal(t, tc.want, got, "literal %s", tc.in)
	}
}
