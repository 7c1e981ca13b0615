package algebra

// Config holds the comparison settings.
type Config struct {
	// Field is the default comparison field.
	Field string `mapstructure:"field" default:"doi"`
	// MergePolicy is the key policy used by merge (strict, casefold).
	MergePolicy string `mapstructure:"merge_policy" default:"strict"`
	// PairPolicy is the key policy used by intersection and difference (strict, casefold).
	PairPolicy string `mapstructure:"pair_policy" default:"casefold"`
}
