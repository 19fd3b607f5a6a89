// Package config is the option/keybinding store: an inputrc-like text
// format (readline's traditional
// "set opt value" / "Control-x: widget-name" syntax) plus a YAML
// alternative, grounded on the `inputrc` sub-package
// (imported throughout readline.go/history.go as
// `github.com/reeflective/readline/inputrc`, whose source wasn't part
// of the retrieved file set, so its shape is re-derived here).
package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/reiver/go-caret"
	"gopkg.in/yaml.v3"
)

// Config holds option values and key-sequence-to-widget-name bindings.
type Config struct {
	Options  map[string]string
	Bindings map[string]string // caret-decoded key sequence -> widget name
}

// Default returns a Config with the stock option values.
func Default() *Config {
	return &Config{
		Options: map[string]string{
			"prompt-transient":       "off",
			"editing-mode":           "emacs",
			"completion-ignore-case": "off",
		},
		Bindings: map[string]string{},
	}
}

func (c *Config) GetBool(name string) bool {
	v := strings.ToLower(c.Options[name])
	return v == "on" || v == "true" || v == "1"
}

func (c *Config) GetString(name string) string { return c.Options[name] }

// yamlDoc mirrors a YAML config file's top-level shape.
type yamlDoc struct {
	Options  map[string]string `yaml:"options"`
	Bindings map[string]string `yaml:"bindings"`
}

// LoadYAML merges a YAML document (gopkg.in/yaml.v3, teacher go.mod
// direct dependency) into cfg.
func LoadYAML(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parsing yaml: %w", err)
	}
	for k, v := range doc.Options {
		cfg.Options[k] = v
	}
	for k, v := range doc.Bindings {
		decoded, err := caret.Decode(k)
		if err != nil {
			decoded = k
		}
		cfg.Bindings[decoded] = v
	}
	return nil
}

// LoadInputrc parses the traditional readline config syntax:
//
//	set opt value
//	"\C-x\C-e": widget-name
//	# comments and blank lines ignored
//
// using go-caret to decode the caret/backslash control-character
// notation inside a quoted key sequence into its literal runes,
// mirroring the inputrc sub-package's purpose.
func LoadInputrc(r io.Reader, cfg *Config) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "set ") {
			fields := strings.Fields(strings.TrimPrefix(line, "set "))
			if len(fields) >= 2 {
				cfg.Options[fields[0]] = fields[1]
			}
			continue
		}

		if err := parseBindLine(line, cfg); err != nil {
			continue // malformed binding lines are skipped, not fatal
		}
	}
	return scanner.Err()
}

func parseBindLine(line string, cfg *Config) error {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return fmt.Errorf("config: no ':' in binding line %q", line)
	}
	keyPart := strings.TrimSpace(line[:colon])
	widget := strings.TrimSpace(line[colon+1:])

	keyPart = strings.Trim(keyPart, `"`)
	decoded, err := caret.Decode(keyPart)
	if err != nil {
		decoded = keyPart
	}

	cfg.Bindings[decoded] = widget
	return nil
}

// EncodeKey renders a literal key sequence back into caret notation
// for display (e.g. in a `bind -p`-style listing).
func EncodeKey(s string) string {
	return caret.Encode(s)
}
