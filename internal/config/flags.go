package config

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
)

// ApplyFlags overrides settings from command-line flags. Settings without
// a flag on the command line keep their environment value.
func (c *Config) ApplyFlags(args []string) error {
	var (
		app = kingpin.New("moviedb", "Personal movie list tracker.")

		dbPath = app.Flag(
			"db", "SQLite database file").Default(c.DatabasePath).String()

		catalog = app.Flag(
			"catalog", "reference catalog file (CSV or XLSX)").Default(c.CatalogPath).String()

		lenient = app.Flag(
			"lenient",
			"store unparseable import cells as empty instead of failing the row",
		).Default(strconv.FormatBool(c.ImportLenient)).Bool()

		logLevel = app.Flag(
			"log-level", "debug, info, warn or error").Default(c.LogLevel).String()

		logFile = app.Flag(
			"log-file", "also write JSON logs to this file").Default(c.LogFile).String()
	)

	if _, err := app.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	c.DatabasePath = *dbPath
	c.CatalogPath = *catalog
	c.ImportLenient = *lenient
	c.LogLevel = *logLevel
	c.LogFile = *logFile
	return c.validate()
}
