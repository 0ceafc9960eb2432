/* Copyright (c) 2021 David Bulkow */

//
// Keeps a log of parsed timer starts in JSONL format.
// JSONL is one line per record, each record in JSON. It is
// not an array. The current list is found by replaying the log.
//

package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one accepted input.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Input   string    `json:"input"`
	Locale  string    `json:"locale"`
	Display string    `json:"display"`
	End     time.Time `json:"end"`
	Added   time.Time `json:"added"`
}

// MaxRecord bounds one encoded log line.
const MaxRecord = 1 << 20

var ErrTooLarge = errors.New("history: record too large")

type record struct {
	Operation string    `json:"op"`
	ID        uuid.UUID `json:"id"`
	Entry     *Entry    `json:"entry,omitempty"`
}

type Log struct {
	sync.Mutex
	filename string
}

// Open creates the log file if needed.
func Open(filename string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return &Log{filename: filename}, nil
}

func (l *Log) Filename() string { return l.filename }

// Add appends e, assigning an ID and time if they are unset.
func (l *Log) Add(e Entry) (Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Added.IsZero() {
		e.Added = time.Now()
	}

	l.Lock()
	defer l.Unlock()

	return e, l.append(&record{Operation: "add", ID: e.ID, Entry: &e})
}

func (l *Log) Delete(id uuid.UUID) error {
	l.Lock()
	defer l.Unlock()

	return l.append(&record{Operation: "delete", ID: id})
}

func (l *Log) Clear() error {
	l.Lock()
	defer l.Unlock()

	return l.append(&record{Operation: "clear"})
}

func (l *Log) append(rec *record) error {
	file, err := os.OpenFile(l.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("jsonl encode: %w", err)
	}

	b = append(b, '\n')
	if len(b) > MaxRecord {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(b))
	}

	if _, err := file.Write(b); err != nil {
		return fmt.Errorf("jsonl write: %w", err)
	}

	return nil
}

// Entries replays the log, oldest entry first.
func (l *Log) Entries() ([]Entry, error) {
	l.Lock()
	defer l.Unlock()

	return l.replay()
}

func (l *Log) replay() ([]Entry, error) {
	file, err := os.Open(l.filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries := make([]Entry, 0)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRecord)
	for line := 1; scanner.Scan(); line++ {
		var rec record

		err := json.Unmarshal(scanner.Bytes(), &rec)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", l.filename, line, err)
		}

		switch rec.Operation {
		case "add":
			if rec.Entry == nil {
				return nil, fmt.Errorf("%s:%d: add without entry", l.filename, line)
			}
			entries = append(entries, *rec.Entry)
		case "delete":
			for i, e := range entries {
				if e.ID != rec.ID {
					continue
				}

				entries = append(entries[:i], entries[i+1:]...)
				break
			}
		case "clear":
			entries = entries[:0]
		default:
			return nil, fmt.Errorf("%s:%d: unknown log operation: %s", l.filename, line, rec.Operation)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Recent returns up to n entries, newest first, one per distinct input.
func (l *Log) Recent(n int) ([]Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		n = 0
	}

	seen := make(map[string]bool)
	recent := make([]Entry, 0, n)

	for i := len(entries) - 1; i >= 0 && len(recent) < n; i-- {
		if seen[entries[i].Input] {
			continue
		}
		seen[entries[i].Input] = true
		recent = append(recent, entries[i])
	}

	return recent, nil
}

var ErrNegativeKeep = errors.New("history: negative entry count")

// Compact rewrites the log holding only the newest keep entries.
func (l *Log) Compact(keep int) error {
	if keep < 0 {
		return ErrNegativeKeep
	}

	l.Lock()
	defer l.Unlock()

	entries, err := l.replay()
	if err != nil {
		return err
	}
	if len(entries) > keep {
		entries = entries[len(entries)-keep:]
	}

	newfile := l.filename + "-"

	file, err := os.OpenFile(newfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for i := range entries {
		err := enc.Encode(&record{Operation: "add", ID: entries[i].ID, Entry: &entries[i]})
		if err != nil {
			return fmt.Errorf("jsonl encode: %w", err)
		}
	}

	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(newfile, l.filename)
}
