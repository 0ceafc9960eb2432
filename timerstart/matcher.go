/* Copyright (c) 2021 David Bulkow */

package timerstart

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dbulkow/timerstart/locale"
)

// bounds a single candidate; the grammars are anchored and short, so only
// pathological input gets near it
const matchTimeout = 250 * time.Millisecond

type candidate struct {
	name  string
	re    *regexp2.Regexp
	build func(*regexp2.Match, *locale.Locale, ParseOptions) (TimerStart, error)
}

// grammar is the ordered candidate list compiled for one locale.
type grammar struct {
	candidates []candidate
	err        error // last pattern that failed to compile
}

// Parser turns text into a TimerStart. Compiled grammars are kept per
// locale; a Parser is safe for concurrent use.
type Parser struct {
	log *slog.Logger

	mu       sync.Mutex
	grammars map[string]*grammar
}

// NewParser returns a Parser logging skipped candidates to logger at debug
// level. A nil logger discards them.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		log:      logger,
		grammars: make(map[string]*grammar),
	}
}

var defaultParser = NewParser(nil)

// Parse uses a shared Parser.
func Parse(text string, loc *locale.Locale, opts ParseOptions) (TimerStart, error) {
	return defaultParser.Parse(text, loc, opts)
}

// MustParse is Parse for inputs known to be good, such as test fixtures.
func MustParse(text string, loc *locale.Locale, opts ParseOptions) TimerStart {
	s, err := Parse(text, loc, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse tries the duration grammars, then every compatible date and time
// pairing, and returns the token built from the first full match. The token
// is not checked for validity.
func (p *Parser) Parse(text string, loc *locale.Locale, opts ParseOptions) (TimerStart, error) {
	if loc == nil {
		e := argumentError("no locale")
		e.input = text
		return TimerStart{}, e
	}

	formatErr := func(cause error) error {
		return &Error{
			msg:   fmt.Sprintf("%q is not a duration or a time", text),
			kind:  formatFault,
			input: text,
			err:   cause,
		}
	}

	if strings.TrimSpace(text) == "" {
		return TimerStart{}, formatErr(nil)
	}

	g := p.grammar(loc)
	cause := g.err

	for _, c := range g.candidates {
		m, err := c.re.FindStringMatch(text)
		if err != nil {
			p.log.Debug("candidate skipped", "candidate", c.name, "error", err)
			cause = err
			continue
		}
		if m == nil {
			continue
		}

		s, err := c.build(m, loc, opts)
		if err != nil {
			p.log.Debug("candidate skipped", "candidate", c.name, "input", text, "error", err)
			cause = err
			continue
		}

		p.log.Debug("matched", "candidate", c.name, "input", text)
		return s, nil
	}

	return TimerStart{}, formatErr(cause)
}

func (p *Parser) grammar(loc *locale.Locale) *grammar {
	key := loc.LanguageTag().String()

	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.grammars[key]; ok {
		return g
	}

	g := p.compile(loc)
	p.grammars[key] = g

	p.log.Debug("grammar compiled", "locale", key, "candidates", len(g.candidates))

	return g
}

// compile lists the duration candidates first, then the combined date and
// time candidates in provider order.
func (p *Parser) compile(loc *locale.Locale) *grammar {
	g := &grammar{}

	add := func(name, pattern string, build func(*regexp2.Match, *locale.Locale, ParseOptions) (TimerStart, error)) {
		re, err := regexp2.Compile(`^\s*(?:`+pattern+`)\s*\z`, regexp2.IgnoreCase)
		if err != nil {
			p.log.Warn("pattern rejected", "locale", loc.Tag, "candidate", name, "error", err)
			g.err = fmt.Errorf("%s: %w", name, err)
			return
		}
		re.MatchTimeout = matchTimeout
		g.candidates = append(g.candidates, candidate{name: name, re: re, build: build})
	}

	for i, pattern := range durationProvider.patterns(loc) {
		add(fmt.Sprintf("%s[%d]", durationProvider.name, i), pattern,
			func(m *regexp2.Match, loc *locale.Locale, opts ParseOptions) (TimerStart, error) {
				d, err := durationProvider.build(m, loc, opts)
				if err != nil {
					return TimerStart{}, err
				}
				return FromDuration(d), nil
			})
	}

	joins := loc.Grammar("join")

	for _, dp := range dateProviders {
		for _, tp := range timeProviders {
			if !dp.compatibleWith(tp.name) || !tp.compatibleWith(dp.name) {
				continue
			}

			build := combine(dp, tp)

			for di, datePattern := range dp.patterns(loc) {
				for ti, timePattern := range tp.patterns(loc) {
					name := fmt.Sprintf("%s[%d]+%s[%d]", dp.name, di, tp.name, ti)

					if datePattern == "" || timePattern == "" {
						add(name, datePattern+timePattern, build)
						continue
					}

					for _, j := range joins {
						r := strings.NewReplacer("{date}", "(?:"+datePattern+")", "{time}", "(?:"+timePattern+")")
						add(name, r.Replace(j), build)
					}
				}
			}
		}
	}

	return g
}

func combine(dp provider[DateToken], tp provider[TimeToken]) func(*regexp2.Match, *locale.Locale, ParseOptions) (TimerStart, error) {
	return func(m *regexp2.Match, loc *locale.Locale, opts ParseOptions) (TimerStart, error) {
		d, err := dp.build(m, loc, opts)
		if err != nil {
			return TimerStart{}, fmt.Errorf("%s: %w", dp.name, err)
		}

		t, err := tp.build(m, loc, opts)
		if err != nil {
			return TimerStart{}, fmt.Errorf("%s: %w", tp.name, err)
		}

		return FromDateTime(d, t), nil
	}
}
