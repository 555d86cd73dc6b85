package version

const (
	Version         = "0.1.0"
	ProtocolVersion = "2025-03-26"
)

var SupportedProtocolVersions = []string{
	"2025-06-18",
	"2025-03-26",
	"2024-11-05",
}
