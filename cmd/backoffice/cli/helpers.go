package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/chadmarket/backoffice/internal/store"
)

// openStore opens the relational store from configuration. The driver
// defaults to sqlite with a local file so the console can be tried without
// a managed backend.
func openStore() (*store.Store, error) {
	driver := viper.GetString("db.driver")
	if driver == "" {
		driver = "sqlite"
	}
	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		if driver != "sqlite" {
			return nil, fmt.Errorf("db.dsn is required for driver %q", driver)
		}
		dsn = "backoffice.db"
	}
	return store.Open(driver, dsn)
}

// jwtSecret returns the session signing secret, with a development fallback.
func jwtSecret() string {
	if s := viper.GetString("auth.jwt_secret"); s != "" {
		return s
	}
	return "backoffice-dev-secret-change-me"
}
