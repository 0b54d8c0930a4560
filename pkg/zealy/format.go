package zealy

import (
	"fmt"
	"strings"
)

const leaderboardHeader = "<b>🏆 Zealy Top 20 🏆</b>\n\n"

var medals = [...]string{"🥇", "🥈", "🥉"}

// Format renders leaderboard entries as a Telegram HTML message: a header,
// one line per entry in input order, and a footer linking the public
// leaderboard page. An empty entry list yields header and footer only.
func Format(entries []Entry, leaderboardURL string) string {
	var b strings.Builder
	b.WriteString(leaderboardHeader)

	for rank, entry := range entries {
		prefix := fmt.Sprintf("%d.", rank+1)
		if rank < len(medals) {
			prefix = medals[rank]
		}
		fmt.Fprintf(&b, "%s %s (%d XP)\n", prefix, entry.Name, entry.XP)
	}

	fmt.Fprintf(&b, "\n<b><a href=%q>Zealy Leaderboard</a></b>", leaderboardURL)
	return b.String()
}
