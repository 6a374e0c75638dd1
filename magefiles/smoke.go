//go:build mage

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	_ "modernc.org/sqlite"
)

// smokeRows are written to the fixture as (ID, json) pairs.
var smokeRows = [][2]string{
	{"once", `"plain"`},
	{"twice", `"\"nested\""`},
	{"object", `"{\"k\":[1,2]}"`},
	{"bare", `{"k":true}`},
}

// Smoke builds the binary, writes a fixture database to a temp directory,
// and migrates it with the integrity check enabled.
func Smoke() error {
	mg.Deps(Build)

	dir, err := os.MkdirTemp("", "jsonmend-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.db")
	out := filepath.Join(dir, "out.db")
	if err := writeFixture(in); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	return sh.RunV(filepath.Join(binaryDir, binaryName), "-i", in, "-o", out, "--check-integrity", "--config-dir", dir)
}

func writeFixture(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, table := range []string{"documents", "settings"} {
		if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (ID TEXT PRIMARY KEY, json TEXT)`, table)); err != nil {
			return err
		}
		for _, r := range smokeRows {
			if _, err := db.Exec(fmt.Sprintf(`INSERT INTO %q (ID, json) VALUES (?, ?)`, table), r[0], r[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
