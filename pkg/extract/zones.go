package extract

import (
	"regexp"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Zone is a lane recognised by a text pattern.
type Zone struct {
	ID      string
	Title   string
	Color   string // background band color
	Pattern *regexp.Regexp
}

// DefaultZones returns the zones of a typical ISA-95 style plant network,
// top to bottom.
func DefaultZones() []Zone {
	return []Zone{
		{"future_expansion", "Future Expansion", "#E8F4FD", regexp.MustCompile(`(?i)\b(future\s*expansion|recommended\s*architecture|expansion)\b`)},
		{"perimeter_network", "Perimeter Network (DMZ)", "#FFE6E6", regexp.MustCompile(`(?i)\b(perimeter|dmz|external|public|internet)\b`)},
		{"process_lan", "Process LAN (TLS 1.2+ Secured)", "#FFF2E6", regexp.MustCompile(`(?i)\b(process\s*lan|secured|certificate|tls)\b`)},
		{"supervisory_network", "Supervisory Network", "#F0F8FF", regexp.MustCompile(`(?i)\b(supervisory|control|network)\b`)},
		{"device_communication", "Device Communication Network", "#E8F5E8", regexp.MustCompile(`(?i)\b(device\s*communication|field|communication)\b`)},
	}
}

// defaultBusses are attached when their lane is present.
var defaultBusses = []graph.Bus{
	{ID: "perimeter_bus", Lane: "perimeter_network", Y: 80, H: 8, Color: "#FF4444", Label: "RMC RMC RMC"},
	{ID: "process_bus", Lane: "process_lan", Y: 80, H: 8, Color: "#FFA500", Label: "Process LAN (Certificate Based TLS 1.2 Secured)"},
	{ID: "device_bus", Lane: "device_communication", Y: 80, H: 8, Color: "#00AA44", Label: "Device Communication"},
}

// defaultNodes is the reference architecture used when no component is
// recognised.
var defaultNodes = []graph.Node{
	{ID: "analytics_clients", Lane: "future_expansion", Kind: graph.KindEdge, Title: "Analytics Clients", Sub: "Future"},
	{ID: "rds_clients", Lane: "future_expansion", Kind: graph.KindDatabase, Title: "RDS Clients", Sub: "Future"},
	{ID: "historian_b", Lane: "perimeter_network", Kind: graph.KindDatabase, Title: "Historian B", Sub: "Active"},
	{ID: "engineering_client", Lane: "process_lan", Kind: graph.KindEdge, Title: "Engineering Client 2", Sub: "Active"},
	{ID: "io_server_b", Lane: "supervisory_network", Kind: graph.KindServer, Title: "IO Server B", Sub: "Primary"},
	{ID: "io_server_c", Lane: "supervisory_network", Kind: graph.KindServer, Title: "IO Server C", Sub: "Secondary"},
	{ID: "safety", Lane: "device_communication", Kind: graph.KindNetwork, Title: "Safety", Sub: "Critical"},
	{ID: "lofs", Lane: "device_communication", Kind: graph.KindServer, Title: "LOFS", Sub: "Active"},
	{ID: "cgss", Lane: "device_communication", Kind: graph.KindServer, Title: "CGSS", Sub: "Active"},
	{ID: "rpop", Lane: "device_communication", Kind: graph.KindServer, Title: "RPOP", Sub: "Active"},
	{ID: "lhfs", Lane: "device_communication", Kind: graph.KindServer, Title: "LHFS", Sub: "Active"},
}
