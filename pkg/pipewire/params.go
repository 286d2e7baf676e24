package pipewire

import "encoding/json"

// UnknownSourceName is the placeholder used when a node carries no usable
// descriptive property.
const UnknownSourceName = "Unknown Source"

// unityVolume is compared with exact float equality: PipeWire reports an
// untouched channel as exactly 1.0, and any deviation is a mismatch.
const unityVolume = 1.0

// Rate is a sample-rate value from a parameter entry. The dump encodes it
// either as a bare integer or as a choice object carrying a "default" field;
// both decode into the same value. Any other shape leaves the Rate invalid.
type Rate struct {
	Value int
	Valid bool
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		r.Value = n
		r.Valid = true
		return nil
	}
	var choice struct {
		Default *int `json:"default"`
	}
	if err := json.Unmarshal(data, &choice); err == nil && choice.Default != nil {
		r.Value = *choice.Default
		r.Valid = true
	}
	return nil
}

// ParamEntry is one entry of a parameter group. Format entries carry rate
// information, either nested under an audio sub-object or at the top level;
// Props entries carry volume information.
type ParamEntry struct {
	Audio          *AudioInfo `json:"audio"`
	Rate           Rate       `json:"rate"`
	Volume         *float64   `json:"volume"`
	ChannelVolumes []float64  `json:"channelVolumes"`
}

// AudioInfo is the audio sub-object some drivers nest format fields under.
type AudioInfo struct {
	Rate Rate `json:"rate"`
}

// DescriptiveName returns a human-oriented name for the node, preferring the
// device description, then the owning application, then the raw node name.
func (o *Object) DescriptiveName() string {
	if o.Info == nil {
		return UnknownSourceName
	}
	for _, key := range []string{"node.description", "application.name", "node.name"} {
		if name := o.Info.Props.String(key); name != "" {
			return name
		}
	}
	return UnknownSourceName
}

// NodeName returns the raw internal node name, or "" if absent.
func (o *Object) NodeName() string {
	if o.Info == nil {
		return ""
	}
	return o.Info.Props.String("node.name")
}

// SampleRate resolves the node's effective sample rate. The active Format
// group wins when present and non-empty: its first entry is read, with a rate
// nested under the audio sub-object taking precedence over a top-level rate.
// Only when no active format is reported does the first EnumFormat entry
// serve as a fallback. ok is false if no group yields a usable value.
func (o *Object) SampleRate() (rate int, ok bool) {
	if formats := o.paramGroup("Format"); len(formats) > 0 {
		entry := formats[0]
		if entry.Audio != nil {
			return entry.Audio.Rate.Value, entry.Audio.Rate.Valid
		}
		return entry.Rate.Value, entry.Rate.Valid
	}
	if formats := o.paramGroup("EnumFormat"); len(formats) > 0 {
		entry := formats[0]
		return entry.Rate.Value, entry.Rate.Valid
	}
	return 0, false
}

// VolumeViolation describes the first parameter entry that failed the unity
// volume check.
type VolumeViolation struct {
	// Master is set when the entry's master volume is off unity.
	Master *float64
	// Channels holds the full per-channel volume list when any channel is
	// off unity.
	Channels []float64
}

// VolumeAtUnity reports whether every volume the node exposes is exactly 1.0.
// A node without a Props parameter group has nothing to contradict unity and
// passes vacuously. The first failing entry short-circuits the scan and is
// returned for diagnostics.
func (o *Object) VolumeAtUnity() (bool, *VolumeViolation) {
	for _, entry := range o.paramGroup("Props") {
		if entry.Volume != nil && *entry.Volume != unityVolume {
			return false, &VolumeViolation{Master: entry.Volume}
		}
		for _, vol := range entry.ChannelVolumes {
			if vol != unityVolume {
				return false, &VolumeViolation{Channels: entry.ChannelVolumes}
			}
		}
	}
	return true, nil
}
