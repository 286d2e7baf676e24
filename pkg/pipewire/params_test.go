package pipewire_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinkwatch/agent/pkg/pipewire"
)

func mustObject(t *testing.T, raw string) *pipewire.Object {
	t.Helper()
	var obj pipewire.Object
	require.NoError(t, json.Unmarshal([]byte(raw), &obj))
	return &obj
}

func TestSampleRate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantRate int
		wantOK   bool
	}{
		{
			name: "active format with audio-nested rate wins over enum formats",
			raw: `{"id": 40, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [{"audio": {"rate": 48000, "channels": 2}}],
				"EnumFormat": [{"rate": {"default": 44100, "min": 8000, "max": 192000}}]
			}}}`,
			wantRate: 48000,
			wantOK:   true,
		},
		{
			name: "active format with top-level rate",
			raw: `{"id": 41, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [{"mediaType": "audio", "rate": 44100}]
			}}}`,
			wantRate: 44100,
			wantOK:   true,
		},
		{
			name: "audio sub-object without a rate does not fall through",
			raw: `{"id": 42, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [{"audio": {"channels": 2}, "rate": 96000}],
				"EnumFormat": [{"rate": 44100}]
			}}}`,
			wantRate: 0,
			wantOK:   false,
		},
		{
			name: "empty active format group falls back to enum formats",
			raw: `{"id": 43, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [],
				"EnumFormat": [{"rate": 44100}, {"rate": 48000}]
			}}}`,
			wantRate: 44100,
			wantOK:   true,
		},
		{
			name: "enum formats only, first entry wins",
			raw: `{"id": 44, "type": "PipeWire:Interface:Node", "info": {"params": {
				"EnumFormat": [{"rate": 96000}, {"rate": 48000}]
			}}}`,
			wantRate: 96000,
			wantOK:   true,
		},
		{
			name: "enum format rate encoded as range with default",
			raw: `{"id": 45, "type": "PipeWire:Interface:Node", "info": {"params": {
				"EnumFormat": [{"rate": {"default": 48000, "min": 8000, "max": 384000}}]
			}}}`,
			wantRate: 48000,
			wantOK:   true,
		},
		{
			name: "active format rate encoded as range with default",
			raw: `{"id": 46, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [{"audio": {"rate": {"default": 88200}}}]
			}}}`,
			wantRate: 88200,
			wantOK:   true,
		},
		{
			name:     "no parameter groups",
			raw:      `{"id": 47, "type": "PipeWire:Interface:Node", "info": {"params": {}}}`,
			wantRate: 0,
			wantOK:   false,
		},
		{
			name:     "no info at all",
			raw:      `{"id": 48, "type": "PipeWire:Interface:Node"}`,
			wantRate: 0,
			wantOK:   false,
		},
		{
			name: "rate with unusable shape degrades to unknown",
			raw: `{"id": 49, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": [{"rate": "48000"}]
			}}}`,
			wantRate: 0,
			wantOK:   false,
		},
		{
			name: "malformed format group treated as absent",
			raw: `{"id": 50, "type": "PipeWire:Interface:Node", "info": {"params": {
				"Format": {"rate": 48000},
				"EnumFormat": [{"rate": 44100}]
			}}}`,
			wantRate: 44100,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustObject(t, tt.raw)
			rate, ok := node.SampleRate()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRate, rate)
		})
	}
}

func TestVolumeAtUnity(t *testing.T) {
	t.Run("no props group passes vacuously", func(t *testing.T) {
		node := mustObject(t, `{"id": 1, "type": "PipeWire:Interface:Node", "info": {"params": {}}}`)
		atUnity, violation := node.VolumeAtUnity()
		assert.True(t, atUnity)
		assert.Nil(t, violation)
	})

	t.Run("empty props group passes", func(t *testing.T) {
		node := mustObject(t, `{"id": 2, "type": "PipeWire:Interface:Node", "info": {"params": {"Props": []}}}`)
		atUnity, _ := node.VolumeAtUnity()
		assert.True(t, atUnity)
	})

	t.Run("all volumes at unity pass", func(t *testing.T) {
		node := mustObject(t, `{"id": 3, "type": "PipeWire:Interface:Node", "info": {"params": {
			"Props": [{"volume": 1.0, "channelVolumes": [1.0, 1.0]}]
		}}}`)
		atUnity, violation := node.VolumeAtUnity()
		assert.True(t, atUnity)
		assert.Nil(t, violation)
	})

	t.Run("master volume off unity fails with value surfaced", func(t *testing.T) {
		node := mustObject(t, `{"id": 4, "type": "PipeWire:Interface:Node", "info": {"params": {
			"Props": [{"volume": 0.75, "channelVolumes": [1.0, 1.0]}]
		}}}`)
		atUnity, violation := node.VolumeAtUnity()
		assert.False(t, atUnity)
		require.NotNil(t, violation)
		require.NotNil(t, violation.Master)
		assert.Equal(t, 0.75, *violation.Master)
	})

	t.Run("single channel off unity fails with full list surfaced", func(t *testing.T) {
		node := mustObject(t, `{"id": 5, "type": "PipeWire:Interface:Node", "info": {"params": {
			"Props": [{"volume": 1.0, "channelVolumes": [1.0, 0.98]}]
		}}}`)
		atUnity, violation := node.VolumeAtUnity()
		assert.False(t, atUnity)
		require.NotNil(t, violation)
		assert.Nil(t, violation.Master)
		assert.Equal(t, []float64{1.0, 0.98}, violation.Channels)
	})

	t.Run("near-unity is still a failure, no tolerance", func(t *testing.T) {
		node := mustObject(t, `{"id": 6, "type": "PipeWire:Interface:Node", "info": {"params": {
			"Props": [{"volume": 0.999999}]
		}}}`)
		atUnity, _ := node.VolumeAtUnity()
		assert.False(t, atUnity)
	})

	t.Run("failure in a later entry is found", func(t *testing.T) {
		node := mustObject(t, `{"id": 7, "type": "PipeWire:Interface:Node", "info": {"params": {
			"Props": [{"mute": false}, {"channelVolumes": [0.5, 0.5]}]
		}}}`)
		atUnity, violation := node.VolumeAtUnity()
		assert.False(t, atUnity)
		require.NotNil(t, violation)
		assert.Equal(t, []float64{0.5, 0.5}, violation.Channels)
	})
}

func TestDescriptiveName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "description wins",
			raw: `{"id": 1, "type": "PipeWire:Interface:Node", "info": {"props": {
				"node.description": "USB DAC", "application.name": "mpv", "node.name": "alsa_output.usb"
			}}}`,
			want: "USB DAC",
		},
		{
			name: "application name next",
			raw: `{"id": 2, "type": "PipeWire:Interface:Node", "info": {"props": {
				"application.name": "mpv", "node.name": "mpv.stream"
			}}}`,
			want: "mpv",
		},
		{
			name: "raw node name last",
			raw:  `{"id": 3, "type": "PipeWire:Interface:Node", "info": {"props": {"node.name": "alsa_output.usb"}}}`,
			want: "alsa_output.usb",
		},
		{
			name: "placeholder when nothing is present",
			raw:  `{"id": 4, "type": "PipeWire:Interface:Node", "info": {"props": {}}}`,
			want: pipewire.UnknownSourceName,
		},
		{
			name: "placeholder when info is absent",
			raw:  `{"id": 5, "type": "PipeWire:Interface:Node"}`,
			want: pipewire.UnknownSourceName,
		},
		{
			name: "non-string property values are ignored",
			raw:  `{"id": 6, "type": "PipeWire:Interface:Node", "info": {"props": {"node.description": 7}}}`,
			want: pipewire.UnknownSourceName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustObject(t, tt.raw).DescriptiveName())
		})
	}
}
