package data

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

// ParseWords reads a newline-delimited word list and keeps only trimmed entries
// at least word.MinLength characters long.
func ParseWords(in io.Reader) (word.List, error) {
	scanner := bufio.NewScanner(in)
	res := make(word.List, 0, 1024) //nolint:mnd // typical list size
	for scanner.Scan() {
		if w, ok := normalize(scanner.Text()); ok {
			res = append(res, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan words: %w", err)
	}

	return res, nil
}

// FilterWords applies the same normalization as ParseWords to an in-memory slice.
func FilterWords(words []string) word.List {
	res := make(word.List, 0, len(words))
	for _, w := range words {
		if w, ok := normalize(w); ok {
			res = append(res, w)
		}
	}
	return res
}

func normalize(line string) (string, bool) {
	w := strings.TrimSpace(line)
	if utf8.RuneCountInString(w) < word.MinLength {
		return "", false
	}
	return w, true
}
