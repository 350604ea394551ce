package mqtt

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"light state", topics.LightState("192.168.1.20"), "lumen/state/192.168.1.20"},
		{"discovery event", topics.DiscoveryEvent(), "lumen/event/discovery"},
		{"command", topics.Command("toggle"), "lumen/command/toggle"},
		{"system status", topics.SystemStatus(), "lumen/system/status"},
		{"all light states", topics.AllLightStates(), "lumen/state/+"},
		{"all commands", topics.AllCommands(), "lumen/command/+"},
		{"all topics", topics.AllTopics(), "lumen/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("topic = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
