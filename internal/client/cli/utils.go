package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseIDs parses the first len(names) arguments as positive ids.
func parseIDs(args []string, usage string, names ...string) ([]int64, error) {
	if len(args) < len(names) {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid %s %q (usage: %s)", name, args[i], usage)
		}
		ids[i] = id
	}
	return ids, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// preview shortens s to one line of at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
