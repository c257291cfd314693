// Package database handles connections to the country catalog store.
//
// It provides a wrapper around GORM that configures either a MySQL or a SQLite
// connection based on the application's configuration. MySQL is the deployment
// target; SQLite keeps local development and one-off CLI runs dependency-free.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
