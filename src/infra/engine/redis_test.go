package engine

import (
	"testing"
	"time"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

func TestRedisStream_AddArgs(t *testing.T) {
	stream := NewRedisStream(RedisOptions{Addr: "127.0.0.1:0", MaxLen: 1000})
	defer stream.Close()

	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	args := stream.addArgs(hotfolder.IngestRequest{Path: "/in/a.jpg", FolderID: "in", Priority: hotfolder.PriorityNormal}, at)

	if args.Stream != defaultStream {
		t.Errorf("expected default stream %s, got %s", defaultStream, args.Stream)
	}
	if args.MaxLen != 1000 || !args.Approx {
		t.Errorf("expected approximate max length 1000, got %d approx=%v", args.MaxLen, args.Approx)
	}
	values, ok := args.Values.(map[string]any)
	if !ok {
		t.Fatalf("expected map values, got %T", args.Values)
	}
	want := map[string]string{
		"path":         "/in/a.jpg",
		"folder_id":    "in",
		"priority":     "normal",
		"submitted_at": "2024-05-01T12:30:00Z",
	}
	for key, value := range want {
		if values[key] != value {
			t.Errorf("%s: expected %q, got %v", key, value, values[key])
		}
	}
}
