package services

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

//go:embed data/words.txt
var defaultWordList string

var (
	defaultDictionaryOnce sync.Once
	defaultDictionary     *Dictionary
)

// Dictionary is a read-only word set. It is safe for concurrent use.
type Dictionary struct {
	words       map[string]struct{}
	longestWord int
}

// DefaultDictionary parses the embedded word list on first use and returns the
// same instance afterwards.
func DefaultDictionary() *Dictionary {
	defaultDictionaryOnce.Do(func() {
		dict, err := LoadDictionary(strings.NewReader(defaultWordList))
		if err != nil {
			panic(fmt.Sprintf("embedded word list: %v", err))
		}
		defaultDictionary = dict
	})
	return defaultDictionary
}

// LoadDictionary reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		d.words[word] = struct{}{}
		if n := utf8.RuneCountInString(word); n > d.longestWord {
			d.longestWord = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	return d, nil
}

func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	return LoadDictionary(f)
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// UnknownWords splits text on whitespace and returns the distinct lowercased
// tokens missing from the dictionary, sorted. Numbers, lone punctuation marks
// and tokens far longer than any known word are not checked.
//
// Proper nouns, acronyms and technical jargon are reported as unknown.
func (d *Dictionary) UnknownWords(text string) []string {
	seen := make(map[string]struct{})
	var unknown []string

	for _, token := range strings.Fields(text) {
		word := strings.ToLower(token)
		if !d.shouldCheck(word) {
			continue
		}
		if _, ok := d.words[word]; ok {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		unknown = append(unknown, word)
	}

	sort.Strings(unknown)
	return unknown
}

func (d *Dictionary) shouldCheck(word string) bool {
	n := utf8.RuneCountInString(word)
	if n == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return false
		}
	}
	if n > d.longestWord+3 {
		return false
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return false
	}
	return true
}
