package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/palapa-cloud/palapa-etl/internal/store"
)

func TestBatchWrite_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	// Two HSETs plus the SADD registering both ids.
	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "HSET" && cmd[1] == "destinations:id-1"
			}),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "HSET" && cmd[1] == "destinations:id-2"
			}),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "SADD" && cmd[1] == "destinations:ids"
			})).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(2)),
		})

	s := NewStoreForTest(c, "")
	err := s.BatchWrite(context.Background(), []store.Document{
		{ID: "id-1", Fields: map[string]string{"name": "Monas"}},
		{ID: "id-2", Fields: map[string]string{"name": "Pantai Kuta"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBatchWrite_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.ErrorResult(context.DeadlineExceeded),
			mock.Result(mock.RedisInt64(1)),
		})

	s := NewStoreForTest(c, "")
	err := s.BatchWrite(context.Background(), []store.Document{
		{ID: "id-1", Fields: map[string]string{"name": "Monas"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "id-1") {
		t.Errorf("error should name the failing document: %v", err)
	}
}

func TestBatchWrite_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c, "")
	if err := s.BatchWrite(context.Background(), nil); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "places:id-1")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"name": mock.RedisString("Monas"),
		})))

	s := NewStoreForTest(c, "places")
	doc, err := s.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Fields["name"] != "Monas" {
		t.Errorf("unexpected fields: %v", doc.Fields)
	}
}

func TestCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SCARD", "destinations:ids")).
		Return(mock.Result(mock.RedisInt64(42)))

	s := NewStoreForTest(c, "")
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("Count = %d, want 42", n)
	}
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c, "")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c, "")
	a, b := s.GenerateID(), s.GenerateID()
	if a == "" || a == b {
		t.Errorf("ids must be unique and non-empty: %q, %q", a, b)
	}
}
