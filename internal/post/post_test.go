package post

import "testing"

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{
			name: "title and status directive",
			post: Post{Title: "Hello", Content: "body\n[status draft]\n"},
			want: true,
		},
		{
			name: "empty buffer",
			post: Post{},
			want: false,
		},
		{
			name: "title without directive block",
			post: Post{Title: "Hello", Content: "just text"},
			want: false,
		},
		{
			name: "directive block without title",
			post: Post{Content: "[status draft]"},
			want: false,
		},
		{
			name: "hand-edited status value still counts",
			post: Post{Title: "Hello", Content: "[status publish]"},
			want: true,
		},
		{
			name: "closed bracket without space does not count",
			post: Post{Title: "Hello", Content: "[status]"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppendBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		block   string
		want    string
	}{
		{
			name:    "empty content",
			content: "",
			block:   "[category x]\n",
			want:    "[category x]\n",
		},
		{
			name:    "content ending with newline",
			content: "some text\n",
			block:   "[category x]\n",
			want:    "some text\n[category x]\n",
		},
		{
			name:    "content without trailing newline gets one",
			content: "some text",
			block:   "[category x]\n",
			want:    "some text\n[category x]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Content: tt.content}
			p.AppendBlock(tt.block)
			if p.Content != tt.want {
				t.Errorf("AppendBlock() content = %q, want %q", p.Content, tt.want)
			}
		})
	}
}
