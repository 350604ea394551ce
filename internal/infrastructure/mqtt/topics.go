package mqtt

import "fmt"

// Topic prefixes for the Lumen MQTT namespace.
//
// All topics use the flat scheme: lumen/{category}/{identifier}
const (
	// TopicPrefix is the base for all Lumen topics.
	TopicPrefix = "lumen"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "lumen/system"
)

// Topics provides builders for Lumen MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.LightState("192.168.1.20")
//	// Returns: "lumen/state/192.168.1.20"
type Topics struct{}

// LightState returns the retained state topic for a single light,
// keyed by its host address.
//
// Example: lumen/state/192.168.1.20
func (Topics) LightState(host string) string {
	return fmt.Sprintf("%s/state/%s", TopicPrefix, host)
}

// DiscoveryEvent returns the topic for discovery completion events.
//
// Example: lumen/event/discovery
func (Topics) DiscoveryEvent() string {
	return fmt.Sprintf("%s/event/discovery", TopicPrefix)
}

// Command returns the topic for a single inbound control command.
//
// Example: lumen/command/toggle
func (Topics) Command(action string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefix, action)
}

// SystemStatus returns the system status topic. The daemon publishes
// online/offline payloads here, and the broker publishes the LWT here
// on an unclean disconnect.
//
// Example: lumen/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllLightStates returns a pattern matching every light's state topic.
//
// Pattern: lumen/state/+
func (Topics) AllLightStates() string {
	return fmt.Sprintf("%s/state/+", TopicPrefix)
}

// AllCommands returns a pattern matching every inbound command topic.
//
// Pattern: lumen/command/+
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/command/+", TopicPrefix)
}

// AllTopics returns a pattern matching the whole Lumen namespace.
// Use with caution - this receives ALL traffic.
//
// Pattern: lumen/#
func (Topics) AllTopics() string {
	return "lumen/#"
}
