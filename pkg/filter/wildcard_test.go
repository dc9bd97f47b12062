package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_EmptyIsUnset(t *testing.T) {
	assert.Nil(t, Compile(""))
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"*.example.com", "www.example.com", true},
		{"*.example.com", "example.com", false},
		{"*.example.com", "www.example.com.evil.net", false},
		{"10.*.1", "10.20.30.1", true},
		{"10.*.1", "10.20.30.2", false},
		{"10.*.1", "10.1", true},
		{"192.168.1.5", "192.168.1.5", true},
		{"192.168.1.5", "192.168.105", false}, // the dot is literal, not a regex any
		{"*", "", true},
		{"*", "anything at all", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "abc", true},
		{"a*b*c", "acb", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.candidate, func(t *testing.T) {
			m := Compile(tt.pattern)
			assert.Equal(t, tt.want, m.Match(tt.candidate))
		})
	}
}
