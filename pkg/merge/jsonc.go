package merge

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Result describes the effect of a structural merge
type Result int

const (
	// Merged means the file was rewritten
	Merged Result = iota
	// AlreadyConfigured means the target was already in place
	AlreadyConfigured
)

func (r Result) String() string {
	if r == AlreadyConfigured {
		return "already-configured"
	}
	return "merged"
}

// ModulesKey is the array listing the bar's right-hand modules
const ModulesKey = "modules-right"

// Provenance is written as the first line of comment tolerant files
const Provenance = "// Modified by omacustom: added keyboard language module"

// LanguageModule is the keyboard layout indicator added to the bar
type LanguageModule struct {
	Name          string `koanf:"name" toml:"name" yaml:"name"`
	Format        string `koanf:"format" toml:"format" yaml:"format"`
	FormatEn      string `koanf:"format_en" toml:"format_en" yaml:"format_en"`
	FormatHe      string `koanf:"format_he" toml:"format_he" yaml:"format_he"`
	OnClick       string `koanf:"on_click" toml:"on_click" yaml:"on_click"`
	Tooltip       bool   `koanf:"tooltip" toml:"tooltip" yaml:"tooltip"`
	TooltipFormat string `koanf:"tooltip_format" toml:"tooltip_format" yaml:"tooltip_format"`
}

// DefaultLanguageModule returns the hyprland/language module used when no
// configuration overrides it.
func DefaultLanguageModule() LanguageModule {
	return LanguageModule{
		Name:          "hyprland/language",
		Format:        "{}",
		FormatEn:      "EN",
		FormatHe:      "HE",
		OnClick:       "hyprctl switchxkblayout all next",
		Tooltip:       true,
		TooltipFormat: "Keyboard layout: {long}",
	}
}

// object renders the module body with a fixed key order.
func (m LanguageModule) object() ([]byte, error) {
	fields := []struct {
		key   string
		value interface{}
	}{
		{"format", m.Format},
		{"format-en", m.FormatEn},
		{"format-he", m.FormatHe},
		{"on-click", m.OnClick},
		{"tooltip", m.Tooltip},
		{"tooltip-format", m.TooltipFormat},
	}

	obj := []byte("{}")
	for _, f := range fields {
		var err error
		if obj, err = sjson.SetBytes(obj, f.key, f.value); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// CommentTolerant reports whether a file may hold comments: either it
// carries the .jsonc extension or its text contained at least one comment.
func CommentTolerant(path string, raw []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		return true
	}
	// Stripping keeps string contents, so any slash that disappears
	// belonged to a comment.
	return bytes.Count(jsonc.ToJSON(raw), []byte("/")) < bytes.Count(raw, []byte("/"))
}

// MergeDocument adds module to the JSONC document raw read from path. It
// returns the bytes to write, or AlreadyConfigured with nil bytes when the
// module key already exists. Malformed input returns a PARSE_FAILURE error.
func MergeDocument(raw []byte, path string, module LanguageModule) ([]byte, Result, error) {
	doc := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, Merged, errors.New(errors.ErrParse, "document is not a JSON object").
			WithDetail("path", path)
	}

	moduleKey := escapePath(module.Name)
	if gjson.GetBytes(doc, moduleKey).Exists() {
		return nil, AlreadyConfigured, nil
	}

	doc, err := ensureListed(doc, module.Name)
	if err != nil {
		return nil, Merged, errors.Wrapf(err, errors.ErrParse, "cannot add %s to %s", module.Name, ModulesKey).
			WithDetail("path", path)
	}

	obj, err := module.object()
	if err != nil {
		return nil, Merged, errors.Wrap(err, errors.ErrInternal, "cannot render module")
	}
	if doc, err = sjson.SetRawBytes(doc, moduleKey, obj); err != nil {
		return nil, Merged, errors.Wrapf(err, errors.ErrParse, "cannot set %s", module.Name).
			WithDetail("path", path)
	}

	out := pretty.PrettyOptions(doc, &pretty.Options{Indent: "  "})
	if CommentTolerant(path, raw) {
		out = append([]byte(Provenance+"\n"), out...)
	}
	return out, Merged, nil
}

// ensureListed appends name to the modules-right array, creating the array
// when the key is absent.
func ensureListed(doc []byte, name string) ([]byte, error) {
	list := gjson.GetBytes(doc, ModulesKey)
	if !list.Exists() {
		return sjson.SetBytes(doc, ModulesKey, []string{name})
	}
	if !list.IsArray() {
		return nil, errors.Newf(errors.ErrParse, "%s is %s, not an array", ModulesKey, list.Type)
	}
	for _, item := range list.Array() {
		if item.Type == gjson.String && item.Str == name {
			return doc, nil
		}
	}
	return sjson.SetBytes(doc, ModulesKey+".-1", name)
}

// escapePath quotes the characters gjson and sjson treat as path syntax.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
