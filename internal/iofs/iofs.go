// Package iofs prepares the file system layout of capexdb: config, data
// and log directories, the default config file and the import template.
package iofs

import (
	_ "embed"
	"os"

	"github.com/odysseus-imc/capexdb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// TemplateCSV is a sample import file with every known column.
//
//go:embed template.csv
var TemplateCSV string

// EnsureDirs creates the config, data and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	for _, dir := range []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	} {
		if err := touchDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless one exists.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeNew(path, ConfigYAML)
}

// WriteTemplate saves the import template to path. An existing file is
// kept and the returned error wraps os.ErrExist.
func WriteTemplate(path string) error {
	return writeNew(path, TemplateCSV)
}

func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return WriteFileError(path, err)
	}
	if _, err = f.WriteString(content); err != nil {
		f.Close()
		return WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}
