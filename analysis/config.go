package analysis

import "fmt"

// Default sentinel node identifiers used by ns-2 dumbbell scripts.
const (
	DefaultOriginNode = "0"
	DefaultFarEndNode = "1"
)

// EngineConfig selects which events the flow engine treats as sends and receives.
type EngineConfig struct {
	ProtocolTag string // matched against field 4 (packet type)
	OriginNode  string // sender; RTT receives arrive back here
	FarEndNode  string // one-way delay observation point
	// Strict removes a pending send once it produced an RTT sample, so a
	// duplicate receive of the same sequence number yields no second sample.
	Strict bool
}

// DefaultEngineConfig returns a config for tag with the default sentinel nodes.
func DefaultEngineConfig(tag string) EngineConfig {
	return EngineConfig{
		ProtocolTag: tag,
		OriginNode:  DefaultOriginNode,
		FarEndNode:  DefaultFarEndNode,
	}
}

// Validate checks that the tag and both sentinel nodes are usable.
func (c EngineConfig) Validate() error {
	if c.ProtocolTag == "" {
		return fmt.Errorf("protocol tag must not be empty")
	}
	if c.OriginNode == "" {
		return fmt.Errorf("origin node must not be empty")
	}
	if c.FarEndNode == "" {
		return fmt.Errorf("far-end node must not be empty")
	}
	if c.OriginNode == c.FarEndNode {
		return fmt.Errorf("origin and far-end node must differ, both are %q", c.OriginNode)
	}
	return nil
}
