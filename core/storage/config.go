package storage

// Config holds configuration for reading and writing reference files.
type Config struct {
	// Extensions lists the file name suffixes picked up when enumerating a directory.
	Extensions []string `mapstructure:"extensions" default:".bib,.bib.gz,.bib.zst"`
	// OutputFormat forces the output format (bibtex, json, yaml). Empty follows the extension.
	OutputFormat string `mapstructure:"output_format" default:""`
}
