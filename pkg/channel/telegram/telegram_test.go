package telegram

import (
	"testing"

	"github.com/mymmrac/telego"

	"questrelay/pkg/bus"
	"questrelay/pkg/config"
)

func TestIsLeaderboardCommand(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"/leaderboard", true},
		{"/leaderboard@questrelay_bot", true},
		{"/leaderboard please", true},
		{"  /leaderboard", true},
		{"/leaderboards", false},
		{"leaderboard", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := isLeaderboardCommand(tc.text); got != tc.want {
			t.Fatalf("isLeaderboardCommand(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestPostFromMessageText(t *testing.T) {
	post := postFromMessage(&telego.Message{
		MessageID: 7,
		Chat:      telego.Chat{ID: -100, Username: "announcements"},
		Text:      "plain update",
	})

	if post.Kind != bus.PostText {
		t.Fatalf("kind = %q, want text", post.Kind)
	}
	if post.Text != "plain update" || post.ChannelUsername != "announcements" || post.MessageID != 7 {
		t.Fatalf("post = %+v", post)
	}
}

func TestPostFromMessagePhoto(t *testing.T) {
	post := postFromMessage(&telego.Message{
		Chat:    telego.Chat{Username: "announcements"},
		Caption: "look at this",
		Photo: []telego.PhotoSize{
			{FileID: "small"},
			{FileID: "big"},
		},
	})

	if post.Kind != bus.PostPhoto {
		t.Fatalf("kind = %q, want photo", post.Kind)
	}
	if post.Text != "look at this" {
		t.Fatalf("text = %q, want caption", post.Text)
	}
	if len(post.PhotoFileIDs) != 2 || post.PhotoFileIDs[1] != "big" {
		t.Fatalf("photo file IDs = %v", post.PhotoFileIDs)
	}
}

func TestPostFromMessageVideo(t *testing.T) {
	post := postFromMessage(&telego.Message{
		Chat:    telego.Chat{Username: "announcements"},
		Caption: "clip",
		Video:   &telego.Video{FileID: "vid-1"},
	})

	if post.Kind != bus.PostVideo {
		t.Fatalf("kind = %q, want video", post.Kind)
	}
	if post.VideoFileID != "vid-1" || post.Text != "clip" {
		t.Fatalf("post = %+v", post)
	}
}

func TestPostFromMessagePoll(t *testing.T) {
	post := postFromMessage(&telego.Message{
		MessageID: 99,
		Chat:      telego.Chat{Username: "announcements"},
		Poll:      &telego.Poll{Question: "yes or no?"},
	})

	if post.Kind != bus.PostPoll {
		t.Fatalf("kind = %q, want poll", post.Kind)
	}
	if post.Text != "" {
		t.Fatalf("text = %q, want empty for poll", post.Text)
	}
	if post.MessageID != 99 {
		t.Fatalf("message_id = %d", post.MessageID)
	}
}

func TestNewAdapterRequiresToken(t *testing.T) {
	if _, err := NewAdapter(config.TelegramConfig{}, nil); err == nil {
		t.Fatal("expected error for empty token")
	}
}
