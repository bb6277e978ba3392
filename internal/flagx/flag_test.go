package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "site.json", "-a", ":9000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "site.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=site.json", "-a", ":9000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=site.json"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-s", "secret", "-x", "1", "-a", ":9000"},
			allowedFlags: []string{"-a", "-s"},
			want:         []string{"-s", "secret", "-a", ":9000"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-a", ":9000"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestStringFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "a.json"}, want: "a.json"},
		{name: "long with equals", args: []string{"--config=b.json"}, want: "b.json"},
		{name: "last wins", args: []string{"-c", "a.json", "-config", "b.json"}, want: "b.json"},
		{name: "mixed with other flags", args: []string{"-a", ":1", "-c", "c.json", "-s", "x"}, want: "c.json"},
		{name: "absent", args: []string{"-a", ":1"}, want: ""},
		{name: "no args", args: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringFlag(tt.args, "c", "config"))
		})
	}
}
