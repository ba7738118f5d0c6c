package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP_Precedencia(t *testing.T) {
	cases := []struct {
		name                             string
		forwarded, realIP, remote, fiber string
		want                             string
	}{
		{"primer salto de X-Forwarded-For", "203.0.113.7, 10.0.0.1", "198.51.100.2", "10.0.0.9:5000", "10.0.0.9", "203.0.113.7"},
		{"X-Real-IP", "", "198.51.100.2", "10.0.0.9:5000", "10.0.0.9", "198.51.100.2"},
		{"socket sin puerto", "", "", "10.0.0.9:5000", "10.0.0.8", "10.0.0.9"},
		{"framework", "", "", "", "10.0.0.8", "10.0.0.8"},
		{"desconocida", "", "", "", "", UnknownIP},
		{"IPv4 mapeada en IPv6", "::ffff:192.168.1.5", "", "", "", "192.168.1.5"},
		{"socket IPv6 mapeado", "", "", "[::ffff:192.168.1.6]:443", "", "192.168.1.6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClientIP(tc.forwarded, tc.realIP, tc.remote, tc.fiber))
		})
	}
}
