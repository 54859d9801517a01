// filepath: internal/initconfig/models.go
package initconfig

// InitConfig is the root struct for parsing the TOML initialization file.
type InitConfig struct {
	Categories []InitCategory `toml:"category"`
	Tags       []string       `toml:"tags"`
}

// InitCategory represents a custom category entry in the TOML config file.
type InitCategory struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
	Icon  string `toml:"icon"`
}
