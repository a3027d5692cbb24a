package items

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single input line; longer lines fail the load
const maxLineSize = 1 << 20

// Item is one row of the list
type Item struct {
	Key  string
	Text string
}

// ID implements performance.Identifier
func (i Item) ID() string {
	return i.Key
}

// Matches reports whether i is the target of a jump query: the key must
// match exactly or the text must contain the query text, ignoring case.
func Matches(i, query Item) bool {
	if query.Key != "" && i.Key == query.Key {
		return true
	}
	if query.Text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(i.Text), strings.ToLower(query.Text))
}

// Query builds a jump target that matches by key or text
func Query(s string) Item {
	return Item{Key: s, Text: s}
}

// FromReader reads one item per line. Keys are 1-based line numbers.
func FromReader(r io.Reader) ([]Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var out []Item
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), "\t", "    ")
		out = append(out, Item{
			Key:  strconv.Itoa(len(out) + 1),
			Text: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return out, nil
}

// Generate returns n placeholder rows
func Generate(n int) []Item {
	out := make([]Item, max(n, 0))
	for i := range out {
		key := strconv.Itoa(i + 1)
		out[i] = Item{Key: key, Text: "Row " + key}
	}
	return out
}
