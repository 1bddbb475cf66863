package config

type (
	// Fields holds color rules per rendered field name (key, type, title,
	// default).
	Fields map[string]Field
	Field  struct {
		Colors
	}
	Colors []Color
	Color  struct {
		Color       PColor `koanf:"color"`
		CustomColor []int  `koanf:"custom"`
		Value       string `koanf:"value"`
		Pattern     string `koanf:"pattern"`
	}
	PColor string
)

const (
	PColorBlack   PColor = "black"
	PColorRed     PColor = "red"
	PColorGreen   PColor = "green"
	PColorYellow  PColor = "yellow"
	PColorBlue    PColor = "blue"
	PColorMagenta PColor = "magenta"
	PColorCyan    PColor = "cyan"
	PColorWhite   PColor = "white"
)
