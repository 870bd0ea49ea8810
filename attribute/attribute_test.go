package attribute

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	require.True(t, Int(5).Equal(Int(5)))
	require.False(t, Int(5).Equal(Int(6)))
	require.False(t, Int(5).Equal(Float(5)))
	require.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	require.True(t, String("a").Equal(String("a")))
	require.True(t, Blob([]byte{1, 2}).Equal(Blob([]byte{1, 2})))
	require.False(t, Blob([]byte{1, 2}).Equal(Blob([]byte{1})))
	require.True(t, Value{}.Equal(Value{}))
}

func TestValueBlobIsNotAliased(t *testing.T) {
	buf := []byte{1, 2, 3}
	v := Blob(buf)
	buf[0] = 9

	got, ok := v.AsBlob()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, _ := v.AsBlob()
	require.Equal(t, []byte{1, 2, 3}, again)
}

func TestValueAccessors(t *testing.T) {
	_, ok := String("x").AsInt()
	require.False(t, ok)

	f, ok := Int(3).AsFloat()
	require.True(t, ok)
	require.Equal(t, 3.0, f)

	b, ok := Bool(true).AsBool()
	require.True(t, ok)
	require.True(t, b)

	require.Equal(t, int64(0), String("x").Int())
	require.Equal(t, "x", String("x").Str())
}

func TestSetCloneEqual(t *testing.T) {
	s := Set{
		KeyFrameWidth:  Int(640),
		KeyOverlayText: String("hello"),
		KeySampleSize:  Blob([]byte{1}),
	}
	c := s.Clone()
	require.True(t, c.Equal(s))

	c.Set(KeyFrameWidth, Int(320))
	require.False(t, c.Equal(s))
	require.Equal(t, int64(640), s[KeyFrameWidth].Int())

	require.True(t, Set(nil).Equal(Set{}))
	require.Nil(t, Set(nil).Clone())
}

func TestSetKeysSorted(t *testing.T) {
	s := Set{"b": Int(1), "a": Int(2), "c": Int(3)}
	require.Equal(t, []Key{"a", "b", "c"}, s.Keys())
	require.Equal(t, `{a: 2, b: 1, c: 3}`, s.String())
}

func TestStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	s.SetInt(ctx, KeyFlipMode, 1)
	s.SetInt(ctx, KeyFlipMode, 2)
	v, ok := s.GetInt(ctx, KeyFlipMode)
	require.True(t, ok)
	require.Equal(t, int64(2), v)
	require.Equal(t, 1, s.Len(ctx))
	require.Equal(t, uint64(2), s.Generation())

	require.True(t, s.Delete(ctx, KeyFlipMode))
	require.False(t, s.Delete(ctx, KeyFlipMode))
	_, ok = s.Get(ctx, KeyFlipMode)
	require.False(t, ok)
}

func TestStoreSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	initial := Set{KeyOverlayText: String("a")}
	s := NewStore(initial)
	initial[KeyOverlayText] = String("changed")

	snap := s.Snapshot(ctx)
	s.SetString(ctx, KeyOverlayText, "b")

	require.Equal(t, "a", snap[KeyOverlayText].Str())
	got, _ := s.GetString(ctx, KeyOverlayText)
	require.Equal(t, "b", got)
}

func TestStoreUpdateAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	s.Update(ctx, func(items Set) {
		items.Set(KeyOverlayX, Int(1))
		items.Set(KeyOverlayY, Int(2))
	})
	require.Equal(t, []Key{KeyOverlayX, KeyOverlayY}, s.Keys(ctx))

	s.Clear(ctx)
	require.Zero(t, s.Len(ctx))
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.SetString(ctx, Key(fmt.Sprintf("k%d", i)), fmt.Sprint(j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot(ctx)
				_, _ = s.Get(ctx, "k0")
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 8, s.Len(ctx))
	require.Equal(t, uint64(800), s.Generation())
	v, _ := s.GetString(ctx, "k3")
	require.Equal(t, "99", v)
}
