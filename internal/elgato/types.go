package elgato

// DefaultPort is the REST port Elgato key lights listen on.
const DefaultPort = 9123

// lightsPath is the REST path for reading and writing light state.
const lightsPath = "/elgato/lights"

// LightState is a snapshot of a single light's mutable attributes.
// It is fetched fresh before every mutation and never cached.
type LightState struct {
	On          bool `json:"on"`
	Brightness  int  `json:"brightness"`
	Temperature int  `json:"temperature"`
}

// StateUpdate is a partial state write. Only non-nil fields are sent;
// the device merges them server-side and leaves other attributes untouched.
type StateUpdate struct {
	On          *bool `json:"on,omitempty"`
	Brightness  *int  `json:"brightness,omitempty"`
	Temperature *int  `json:"temperature,omitempty"`
}

// lightsEnvelope is the wire format of the /elgato/lights resource:
// a JSON object carrying a "lights" array. Element 0 is the light state;
// key lights report exactly one element.
type lightsEnvelope struct {
	NumberOfLights int          `json:"numberOfLights,omitempty"`
	Lights         []LightState `json:"lights"`
}

// updateEnvelope is the wire format for partial writes.
type updateEnvelope struct {
	Lights []StateUpdate `json:"lights"`
}
