// Where: cli/internal/infra/config/bootstrap.go
// What: Project setup for init: functions root, placeholder config, package script.
// Why: Give new projects a working layout without overwriting anything the user edited.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru/alicf/cli/internal/infra/fileops"
	"github.com/poruru/alicf/cli/internal/meta"
	"github.com/valyala/fastjson"
)

const placeholderConfig = `{
  "accessKeyId": "Your Aliyun AccessKeyId",
  "accessKeySecret": "Your Aliyun AccessKeySecret",
  "spaceId": "Your Aliyun Serverless SpaceId",
  "triggers": {}
}
`

// ScriptStatus describes what RegisterPackageScript did.
type ScriptStatus string

const (
	ScriptAdded           ScriptStatus = "added"
	ScriptAlreadyPresent  ScriptStatus = "present"
	ScriptManifestMissing ScriptStatus = "missing"
)

// EnsureConfigFile creates root and a placeholder config when absent.
// It reports whether the config file was written.
func EnsureConfigFile(root string) (bool, error) {
	if err := fileops.EnsureDir(root); err != nil {
		return false, fmt.Errorf("create functions root: %w", err)
	}
	path := filepath.Join(root, meta.ConfigFile)
	if fileops.FileExists(path) {
		return false, nil
	}
	if err := fileops.WriteFile(path, placeholderConfig, 0o600); err != nil {
		return false, fmt.Errorf("write placeholder config: %w", err)
	}
	return true, nil
}

// RegisterPackageScript adds scripts.cf to the host package.json, keeping key
// order and a two-space indent. An existing cf script is left untouched.
func RegisterPackageScript(projectDir string) (ScriptStatus, error) {
	path := filepath.Join(projectDir, meta.PackageManifest)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ScriptManifestMissing, nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var parser fastjson.Parser
	doc, err := parser.ParseBytes(data)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Type() != fastjson.TypeObject {
		return "", fmt.Errorf("parse %s: top-level value must be an object", path)
	}

	var arena fastjson.Arena
	scripts := doc.Get("scripts")
	if scripts == nil || scripts.Type() != fastjson.TypeObject {
		scripts = arena.NewObject()
		doc.Set("scripts", scripts)
	}
	if scripts.Exists(meta.PackageScript) {
		return ScriptAlreadyPresent, nil
	}
	scripts.Set(meta.PackageScript, arena.NewString(meta.PackageCommand))

	var out bytes.Buffer
	if err := json.Indent(&out, doc.MarshalTo(nil), "", "  "); err != nil {
		return "", fmt.Errorf("format %s: %w", path, err)
	}
	out.WriteByte('\n')

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, out.Bytes(), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return ScriptAdded, nil
}
