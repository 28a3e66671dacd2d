// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package classql_test

import (
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"

	"github.com/campusops/classql"
)

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) writeConfig(c *C, contents string) string {
	path := filepath.Join(c.MkDir(), "classql.yaml")
	err := os.WriteFile(path, []byte(contents), 0644)
	c.Assert(err, IsNil)
	return path
}

func (s *ConfigSuite) TestDefaultConfig(c *C) {
	cfg := classql.DefaultConfig()
	c.Assert(cfg.Database.Path, Equals, "classes.db")
	c.Assert(cfg.Database.Table, Equals, "classes")
}

func (s *ConfigSuite) TestLoadConfig(c *C) {
	path := s.writeConfig(c, `
database:
  path: /tmp/schedule.db
  table: fall_2026
`)
	cfg, err := classql.LoadConfig(path)
	c.Assert(err, IsNil)
	c.Assert(cfg.Database.Path, Equals, "/tmp/schedule.db")
	c.Assert(cfg.Database.Table, Equals, "fall_2026")
}

func (s *ConfigSuite) TestLoadConfigDefaultsTable(c *C) {
	path := s.writeConfig(c, `
database:
  path: /tmp/schedule.db
`)
	cfg, err := classql.LoadConfig(path)
	c.Assert(err, IsNil)
	c.Assert(cfg.Database.Table, Equals, "classes")
}

func (s *ConfigSuite) TestLoadConfigEmptyPath(c *C) {
	cfg, err := classql.LoadConfig("")
	c.Assert(err, IsNil)
	c.Assert(cfg.Database.Path, Equals, "classes.db")
	c.Assert(cfg.Database.Table, Equals, "classes")
}

func (s *ConfigSuite) TestLoadConfigEnvOverride(c *C) {
	err := os.Setenv("CLASSQL_DB_PATH", "/tmp/override.db")
	c.Assert(err, IsNil)
	defer os.Unsetenv("CLASSQL_DB_PATH")

	cfg, err := classql.LoadConfig("")
	c.Assert(err, IsNil)
	c.Assert(cfg.Database.Path, Equals, "/tmp/override.db")
}

func (s *ConfigSuite) TestLoadConfigMissingFile(c *C) {
	_, err := classql.LoadConfig(filepath.Join(c.MkDir(), "absent.yaml"))
	c.Assert(err, ErrorMatches, "failed to read config file: .*")
}

func (s *ConfigSuite) TestLoadConfigBadTableName(c *C) {
	path := s.writeConfig(c, `
database:
  path: /tmp/schedule.db
  table: "classes; DROP TABLE classes"
`)
	_, err := classql.LoadConfig(path)
	c.Assert(err, ErrorMatches, `configuration validation failed: invalid table name "classes; DROP TABLE classes"`)
}
