package bus

import "testing"

func TestDispatchResultOK(t *testing.T) {
	result := DispatchResult{Attempted: 3}
	if !result.OK() || result.Partial() {
		t.Fatalf("result = %+v, want OK and not partial", result)
	}
}

func TestDispatchResultPartial(t *testing.T) {
	result := DispatchResult{Attempted: 3, Failed: []int{1}}
	if result.OK() || !result.Partial() {
		t.Fatalf("result = %+v, want partial", result)
	}
}

func TestDispatchResultTotalFailure(t *testing.T) {
	result := DispatchResult{Attempted: 2, Failed: []int{0, 1}}
	if result.OK() || result.Partial() {
		t.Fatalf("result = %+v, want total failure", result)
	}
}

func TestPayloadConstructors(t *testing.T) {
	if p := ContentPayload("hi"); p.Kind != PayloadContent || p.Content != "hi" {
		t.Fatalf("ContentPayload = %+v", p)
	}
	if p := FilePayload("https://files.example/a"); p.Kind != PayloadFile || p.FileURL == "" {
		t.Fatalf("FilePayload = %+v", p)
	}
	p := EmbedPayload(Embed{Title: "t"})
	if p.Kind != PayloadEmbed || p.Embed == nil || p.Embed.Title != "t" {
		t.Fatalf("EmbedPayload = %+v", p)
	}
}
