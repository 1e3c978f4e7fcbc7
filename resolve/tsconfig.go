package resolve

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"depscan/logger"
)

type tsconfigFile struct {
	CompilerOptions *compilerOptions `json:"compilerOptions"`
}

type compilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// LoadAliases reads tsconfig.json at the project root and returns the alias
// table derived from compilerOptions.baseUrl and paths. Only the first
// replacement target per prefix is used; "/*" suffixes are stripped from
// both sides. A missing or malformed file yields an empty table; parse
// failures are logged, never fatal.
func LoadAliases(root string, log logger.Logger) []Alias {
	if log == nil {
		log = logger.Nop{}
	}
	data, err := os.ReadFile(filepath.Join(root, "tsconfig.json"))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("reading tsconfig.json: %v", err)
		}
		return nil
	}

	var cfg tsconfigFile
	if err := json.Unmarshal(stripJSONC(data), &cfg); err != nil {
		log.Errorf("parsing tsconfig.json: %v", err)
		return nil
	}
	if cfg.CompilerOptions == nil {
		return nil
	}

	base := cfg.CompilerOptions.BaseURL
	if base == "" {
		base = "."
	}

	prefixes := make([]string, 0, len(cfg.CompilerOptions.Paths))
	for p := range cfg.CompilerOptions.Paths {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	var aliases []Alias
	for _, p := range prefixes {
		targets := cfg.CompilerOptions.Paths[p]
		if len(targets) == 0 {
			continue
		}
		aliases = append(aliases, Alias{
			Prefix: strings.TrimSuffix(p, "/*"),
			Target: path.Join(base, strings.TrimSuffix(targets[0], "/*")),
		})
	}
	return aliases
}

// stripJSONC rewrites a JSONC document into strict JSON: line and block
// comments become spaces and trailing commas before } or ] are removed.
// String contents, including escapes, pass through untouched.
func stripJSONC(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i++ // past the closing slash
			out = append(out, ' ')
		case c == ',':
			if j := nextToken(src, i+1); j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// nextToken skips whitespace and comments starting at i and returns the
// index of the next significant byte.
func nextToken(src []byte, i int) int {
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i += 2
		default:
			return i
		}
	}
	return i
}
