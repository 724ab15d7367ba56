package ecp

// Keys are the remote key names understood by the keypress endpoint.
// TV-specific keys (volume, power, inputs) are accepted by the endpoint on
// devices that support them and ignored otherwise.
var Keys = []string{
	"Home",
	"Rev",
	"Fwd",
	"Play",
	"Select",
	"Left",
	"Right",
	"Down",
	"Up",
	"Back",
	"InstantReplay",
	"Info",
	"Backspace",
	"Search",
	"Enter",
	"FindRemote",
	"VolumeDown",
	"VolumeMute",
	"VolumeUp",
	"PowerOff",
	"ChannelUp",
	"ChannelDown",
	"InputTuner",
	"InputHDMI1",
	"InputHDMI2",
	"InputHDMI3",
	"InputHDMI4",
	"InputAV1",
}

var keySet = func() map[string]bool {
	m := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		m[k] = true
	}
	return m
}()

// IsKnownKey reports whether key is one of the documented remote keys.
// The command router deliberately does not enforce this - the device is
// the authority - but interactive frontends use it for hints.
func IsKnownKey(key string) bool {
	return keySet[key]
}
