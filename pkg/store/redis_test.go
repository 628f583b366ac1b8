package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := &RedisStore{client: newFakeRedis(), key: cartKey("counter-1")}

	if _, ok, err := s.Load(ctx); err != nil || ok {
		t.Fatalf("fresh store should be absent, ok=%v err=%v", ok, err)
	}

	want := Snapshot{Lines: []SnapshotLine{
		{ProductID: "p1", ProductName: "Atta 10kg", Quantity: 3, UnitPrice: decimal.RequireFromString("380"), Stock: 8},
	}}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if len(got.Lines) != 1 || !got.Lines[0].UnitPrice.Equal(want.Lines[0].UnitPrice) {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := s.Load(ctx); ok {
		t.Fatal("expected absent after clear")
	}
}

func TestRedisStoreMalformedPayloadReadsAsAbsent(t *testing.T) {
	fake := newFakeRedis()
	key := cartKey("counter-1")
	fake.data[key] = "{corrupt"

	s := &RedisStore{client: fake, key: key}
	_, ok, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt payload must degrade silently, got %v", err)
	}
	if ok {
		t.Fatal("corrupt payload should read as absent")
	}
}
