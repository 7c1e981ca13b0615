// Package config provides configuration management for bibforge.
//
// Settings come from environment variables, optionally seeded from a .env file,
// and are decoded with Viper. Defaults live in the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
//   - Log: logging level and format (LOG_LEVEL, LOG_FORMAT)
//   - Compare: comparison field and key policies (COMPARE_FIELD, COMPARE_MERGE_POLICY, COMPARE_PAIR_POLICY)
//   - Storage: directory extensions and forced output format (STORAGE_EXTENSIONS, STORAGE_OUTPUT_FORMAT)
//
// Command-line flags take precedence over anything loaded here.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.Field)
package config
