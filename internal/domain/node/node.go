package node

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/geo"
)

// Status is the reachability state of a storage-provider node.
type Status string

// Node status constants. Status is binary.
const (
	Active  Status = "active"
	Offline Status = "offline"
)

// IsValid reports whether s is one of the two known states.
func (s Status) IsValid() bool {
	return s == Active || s == Offline
}

// ParseStatus normalizes and validates a status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidNode, raw)
	}
	return s, nil
}

// Location is where a node is hosted.
type Location struct {
	Latitude  float64
	Longitude float64
	Country   string
	City      string // optional
}

// Node is a storage-provider node record (immutable value object).
type Node struct {
	id        string
	ip        string
	version   string
	status    Status
	latencyMs int
	storageGB float64
	location  Location
}

// New validates and creates a Node.
func New(
	id, ip, version string, status Status,
	latencyMs int, storageGB float64, loc Location,
) (Node, error) {
	if id == "" {
		return Node{}, fmt.Errorf("%w: node ID is required", domain.ErrInvalidNode)
	}
	if !status.IsValid() {
		return Node{}, fmt.Errorf("%w: node %s has unknown status %q", domain.ErrInvalidNode, id, status)
	}
	if latencyMs < 0 {
		return Node{}, fmt.Errorf("%w: node %s has negative latency", domain.ErrInvalidNode, id)
	}
	if storageGB < 0 {
		return Node{}, fmt.Errorf("%w: node %s has negative storage", domain.ErrInvalidNode, id)
	}
	if loc.Country == "" {
		return Node{}, fmt.Errorf("%w: node %s has no country", domain.ErrInvalidNode, id)
	}
	if !geo.ValidateCoordinates(loc.Latitude, loc.Longitude) {
		return Node{}, fmt.Errorf("%w: node %s has coordinates out of range", domain.ErrInvalidNode, id)
	}

	return Reconstruct(id, ip, version, status, latencyMs, storageGB, loc), nil
}

// Reconstruct creates a Node without validation (storage hydration).
func Reconstruct(
	id, ip, version string, status Status,
	latencyMs int, storageGB float64, loc Location,
) Node {
	return Node{
		id:        id,
		ip:        ip,
		version:   version,
		status:    status,
		latencyMs: latencyMs,
		storageGB: storageGB,
		location:  loc,
	}
}

// ID returns the node identifier.
func (n Node) ID() string { return n.id }

// IP returns the node address.
func (n Node) IP() string { return n.ip }

// Version returns the node software version string.
func (n Node) Version() string { return n.version }

// Status returns the node status.
func (n Node) Status() Status { return n.status }

// LatencyMs returns the measured latency in milliseconds.
func (n Node) LatencyMs() int { return n.latencyMs }

// StorageGB returns the storage capacity in gigabytes.
func (n Node) StorageGB() float64 { return n.storageGB }

// Location returns where the node is hosted.
func (n Node) Location() Location { return n.location }

// Country is shorthand for Location().Country.
func (n Node) Country() string { return n.location.Country }
