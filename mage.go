//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetOutput                 = "gen"
	jetSchemaFile             = "jet.sqlite"
	sqliteRatingsFileLocation = "rating.sqlite"
	serverBin                 = "./bin/server"
	certgenBin                = "./bin/certgen"
)

const (
	toolsDir     = "tools/"
	toolsModfile = toolsDir + "go.mod"
	toolsBinDir  = toolsDir + "bin/"
	lintTool     = toolsBinDir + "golangci-lint"
	jetTool      = toolsBinDir + "jet"
	migrateTool  = toolsBinDir + "migrate"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds server binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-o", serverBin, "./cmd")
}

// Certgen builds the certificate generator and writes cert.pem and key.pem
func Certgen() error {
	mg.Deps(goModDownload)
	if err := sh.Run("go", "build", "-o", certgenBin, "./cmd/certgen"); err != nil {
		return err
	}
	return sh.Run(certgenBin)
}

// Run starts server
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin)
}

// Test runs unit tests with the race detector
func Test() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "test", "-race", "-count=1", "./...")
}

// GenJet regenerates gen/model and gen/table from the migrations
func GenJet() error {
	mg.Deps(buildJetTool, buildMigrateTool)
	if err := os.Remove(jetSchemaFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	defer os.Remove(jetSchemaFile)
	if err := sh.Run(migrateTool, "-path", "migrations", "-database", "sqlite3://"+jetSchemaFile, "up"); err != nil {
		return err
	}
	return sh.Run(jetTool, "-source", "sqlite", "-dsn", jetSchemaFile, "-path", jetOutput, "-ignore-tables", "schema_migrations")
}

// MigrateDown rolls back the local database
func MigrateDown() error {
	mg.Deps(buildMigrateTool)
	return sh.Run(migrateTool, "-path", "migrations", "-database", "sqlite3://"+sqliteRatingsFileLocation, "down", "-all")
}

func buildJetTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-o", jetTool, "github.com/go-jet/jet/v2/cmd/jet")
}

func buildMigrateTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-tags", "sqlite3", "-o", migrateTool, "github.com/golang-migrate/migrate/v4/cmd/migrate")
}

func Lint() error {
	mg.Deps(buildLintTool)
	return sh.Run(lintTool, "run", "./...")
}

func buildLintTool() error {
	return sh.Run(
		"go", "build",
		"-modfile", toolsModfile,
		"-o", lintTool,
		"github.com/golangci/golangci-lint/cmd/golangci-lint",
	)
}
