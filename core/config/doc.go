// Package config provides configuration management for the country catalog service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, with defaults declared as struct tags on each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: catalog store connection details (MySQL or SQLite)
//   - Storage: S3/MinIO credentials and bucket for generated summary reports
//   - Sources: external country and exchange-rate feed URLs and timeout
//   - Refresh: reconciliation engine tuning (GDP multiplier range)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
