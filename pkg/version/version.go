package version

// Version is shared by every server's serverInfo response.
const Version = "1.0.0"

// ProtocolVersion is the MCP revision this suite speaks by default.
const ProtocolVersion = "2024-11-05"

// SupportedProtocolVersions lists revisions accepted during initialize
// negotiation, newest first.
var SupportedProtocolVersions = []string{
	"2025-03-26",
	"2024-11-05",
}
