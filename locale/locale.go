/* Copyright (c) 2021 David Bulkow */

// Package locale holds the per-language pattern and display tables used by
// the timer start parser and formatter.
//
// Tables are YAML files embedded in the binary. Each table maps match-group
// identifiers (monday, january, midday, ...) to a display name and a
// regular expression fragment, and lists the ordered grammar fragments for
// every token variant. Placeholders in grammar fragments are expanded at
// load time:
//
//	{num}            a number in the locale's notation
//	{ampm}           the am/pm suffix, captured as the am or pm group
//	{<table name>}   an alternation of named groups, one per table entry
package locale

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tableFS embed.FS

// DefaultTag is used when a requested language has no table.
const DefaultTag = "en"

var ErrEmptyTag = errors.New("locale: empty language tag")

// Entry is a named item: what to display and what to match.
type Entry struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Plural holds the singular and plural display form of a unit.
type Plural struct {
	One   string `yaml:"one"`
	Other string `yaml:"other"`
}

type Locale struct {
	Tag              string                      `yaml:"tag"`
	Name             string                      `yaml:"name"`
	Number           string                      `yaml:"number"`
	DecimalSeparator string                      `yaml:"decimal_separator"`
	UnitSeparator    string                      `yaml:"unit_separator"`
	Suffixes         map[string]Entry            `yaml:"suffixes"`
	Tables           map[string]map[string]Entry `yaml:"tables"`
	Grammars         map[string][]string         `yaml:"grammars"`
	Units            map[string]Plural           `yaml:"units"`
	Templates        map[string]string           `yaml:"templates"`

	tag      language.Tag
	expanded map[string][]string
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Locale)

	matcherOnce sync.Once
	matcher     language.Matcher
	supported   []string
	matcherErr  error
)

// Load returns the table best matching a BCP 47 language tag. Languages
// without a table fall back to DefaultTag.
func Load(tag string) (*Locale, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, ErrEmptyTag
	}

	want, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("locale: parsing tag %q: %w", tag, err)
	}

	matcherOnce.Do(buildMatcher)
	if matcherErr != nil {
		return nil, matcherErr
	}

	_, idx, _ := matcher.Match(want)

	return loadTable(supported[idx])
}

// Default returns the DefaultTag table. The embedded tables are part of the
// binary, so a failure here is a build defect.
func Default() *Locale {
	l, err := loadTable(DefaultTag)
	if err != nil {
		panic(fmt.Sprintf("locale: default table: %v", err))
	}
	return l
}

// Available lists the tags of all embedded tables, DefaultTag first.
func Available() ([]string, error) {
	entries, err := tableFS.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("locale: reading tables: %w", err)
	}

	var tags []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		tags = append(tags, strings.TrimSuffix(name, ".yaml"))
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i] == DefaultTag || tags[j] == DefaultTag {
			return tags[i] == DefaultTag
		}
		return tags[i] < tags[j]
	})

	return tags, nil
}

func buildMatcher() {
	tags, err := Available()
	if err != nil {
		matcherErr = err
		return
	}
	if len(tags) == 0 || tags[0] != DefaultTag {
		matcherErr = fmt.Errorf("locale: no %q table", DefaultTag)
		return
	}

	langs := make([]language.Tag, 0, len(tags))
	for _, t := range tags {
		lt, err := language.Parse(t)
		if err != nil {
			matcherErr = fmt.Errorf("locale: table %q: %w", t, err)
			return
		}
		langs = append(langs, lt)
	}

	supported = tags
	matcher = language.NewMatcher(langs)
}

func loadTable(name string) (*Locale, error) {
	cacheMu.RLock()
	if l, ok := cache[name]; ok {
		cacheMu.RUnlock()
		return l, nil
	}
	cacheMu.RUnlock()

	data, err := tableFS.ReadFile(path.Join("tables", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("locale: table %q not found: %w", name, err)
	}

	l, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("locale: table %q: %w", name, err)
	}

	cacheMu.Lock()
	if cached, ok := cache[name]; ok {
		l = cached
	} else {
		cache[name] = l
	}
	cacheMu.Unlock()

	return l, nil
}

func parse(data []byte) (*Locale, error) {
	var l Locale
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}

	tag, err := language.Parse(l.Tag)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	l.tag = tag

	if l.Number == "" {
		return nil, errors.New("number pattern missing")
	}
	if l.DecimalSeparator == "" {
		l.DecimalSeparator = "."
	}
	if n := len(l.Grammars["duration"]); n != 3 {
		return nil, fmt.Errorf("duration grammar needs 3 patterns, has %d", n)
	}
	if len(l.Grammars["join"]) == 0 {
		return nil, errors.New("join grammar missing")
	}
	for _, j := range l.Grammars["join"] {
		if !strings.Contains(j, "{date}") || !strings.Contains(j, "{time}") {
			return nil, fmt.Errorf("join %q needs {date} and {time}", j)
		}
	}

	l.expand()

	return &l, nil
}

// alternation builds (?:(?<k1>p1)|(?<k2>p2)...) over the entries, sorted by
// key so the compiled grammars are the same on every load.
func alternation(entries map[string]Entry) string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("(?<%s>%s)", k, entries[k].Pattern))
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

func (l *Locale) expand() {
	pairs := []string{"{num}", "(?:" + l.Number + ")"}

	am := []string{}
	pm := []string{}
	if e, ok := l.Suffixes["am"]; ok {
		am = append(am, e.Pattern)
	}
	if e, ok := l.Suffixes["midnight"]; ok {
		am = append(am, e.Pattern)
	}
	if e, ok := l.Suffixes["pm"]; ok {
		pm = append(pm, e.Pattern)
	}
	if e, ok := l.Suffixes["midday"]; ok {
		pm = append(pm, e.Pattern)
	}
	if len(am) > 0 && len(pm) > 0 {
		ampm := fmt.Sprintf("(?:(?<am>%s)|(?<pm>%s))", strings.Join(am, "|"), strings.Join(pm, "|"))
		pairs = append(pairs, "{ampm}", ampm)
	}

	for name, entries := range l.Tables {
		pairs = append(pairs, "{"+name+"}", alternation(entries))
	}

	r := strings.NewReplacer(pairs...)

	l.expanded = make(map[string][]string, len(l.Grammars))
	for name, patterns := range l.Grammars {
		out := make([]string, len(patterns))
		for i, p := range patterns {
			if name == "join" {
				// {date} and {time} are filled in by the parser
				out[i] = p
				continue
			}
			out[i] = r.Replace(p)
		}
		l.expanded[name] = out
	}
}

// LanguageTag returns the parsed tag of the table.
func (l *Locale) LanguageTag() language.Tag { return l.tag }

// Grammar returns the expanded, ordered patterns of a grammar. Unknown
// grammars have no patterns.
func (l *Locale) Grammar(name string) []string {
	p := l.expanded[name]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// Lookup returns the display name of an entry of a table.
func (l *Locale) Lookup(table, key string) (string, bool) {
	e, ok := l.Tables[table][key]
	if !ok || e.Name == "" {
		return "", false
	}
	return e.Name, true
}

// Suffix returns the display form of a time suffix (am, pm, midnight, midday).
func (l *Locale) Suffix(key string) (string, bool) {
	e, ok := l.Suffixes[key]
	if !ok || e.Name == "" {
		return "", false
	}
	return e.Name, true
}

// Unit returns the display name of a duration unit.
func (l *Locale) Unit(unit string, one bool) (string, bool) {
	p, ok := l.Units[unit]
	if !ok {
		return "", false
	}
	if one {
		return p.One, p.One != ""
	}
	return p.Other, p.Other != ""
}

// Template returns a display template such as "{date} at {time}".
func (l *Locale) Template(key string) (string, bool) {
	t, ok := l.Templates[key]
	return t, ok && t != ""
}

// FormatNumber renders v with the locale's decimal separator using the
// fewest digits that parse back to v.
func (l *Locale) FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if l.DecimalSeparator != "." {
		s = strings.Replace(s, ".", l.DecimalSeparator, 1)
	}
	return s
}

// ParseNumber reads a number written in the locale's notation.
func (l *Locale) ParseNumber(s string) (float64, error) {
	if l.DecimalSeparator != "." {
		s = strings.Replace(s, l.DecimalSeparator, ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
