package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/mentorhub/relay/server/store/types"
)

func TestGetOrCompute(t *testing.T) {
	c := New(time.Minute)

	computed := 0
	compute := func() (interface{}, error) {
		computed++
		return true, nil
	}

	key := SharedGroupKey(types.Uid(1), types.Uid(2))
	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(key, compute)
		if err != nil {
			t.Fatalf("GetOrCompute failed: %v", err)
		}
		if v.(bool) != true {
			t.Errorf("Unexpected value: %v", v)
		}
	}
	if computed != 1 {
		t.Errorf("compute expected to run once, ran %d times.", computed)
	}
}

func TestComputeErrorNotCached(t *testing.T) {
	c := New(time.Minute)

	failures := 0
	failing := func() (interface{}, error) {
		failures++
		return nil, errors.New("backend down")
	}

	key := MembershipKey(types.Uid(7), types.Uid(1))
	if _, err := c.GetOrCompute(key, failing); err == nil {
		t.Fatal("Expected an error from compute.")
	}
	if _, err := c.GetOrCompute(key, failing); err == nil {
		t.Fatal("Expected the error again: failures are not memoized.")
	}
	if failures != 2 {
		t.Errorf("compute expected to run twice, ran %d times.", failures)
	}
	if c.Len() != 0 {
		t.Errorf("Failed computes must not leave entries, found %d.", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	computed := 0
	compute := func() (interface{}, error) {
		computed++
		return false, nil
	}

	key := SharedGroupKey(types.Uid(1), types.Uid(2))
	c.GetOrCompute(key, compute)
	time.Sleep(20 * time.Millisecond)
	c.GetOrCompute(key, compute)

	if computed != 2 {
		t.Errorf("Expired entry expected to recompute, compute ran %d times.", computed)
	}
}

func TestSharedGroupKeySymmetric(t *testing.T) {
	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	if SharedGroupKey(uid1, uid2) != SharedGroupKey(uid2, uid1) {
		t.Error("SharedGroupKey must not depend on argument order.")
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)

	uid1 := types.Uid(1)
	uid2 := types.Uid(2)
	uid3 := types.Uid(3)
	group := types.Uid(50)

	cached := func() (interface{}, error) { return true, nil }
	c.GetOrCompute(SharedGroupKey(uid1, uid2), cached)
	c.GetOrCompute(SharedGroupKey(uid2, uid3), cached)
	c.GetOrCompute(MembershipKey(group, uid1), cached)
	c.GetOrCompute(MembershipKey(group, uid3), cached)

	// Dropping uid1 takes out its pair check and its membership check,
	// regardless of the position of the uid in the key.
	if removed := c.Invalidate(uid1); removed != 2 {
		t.Errorf("Invalidate(uid1) expected to remove 2 entries, removed %d.", removed)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries to survive, found %d.", c.Len())
	}

	// The surviving entries still serve without recompute.
	computed := 0
	c.GetOrCompute(SharedGroupKey(uid2, uid3), func() (interface{}, error) {
		computed++
		return true, nil
	})
	if computed != 0 {
		t.Error("Entry not mentioning the invalidated user must survive.")
	}

	if removed := c.Invalidate(types.Uid(99)); removed != 0 {
		t.Errorf("Invalidate of an unknown user removed %d entries.", removed)
	}
}

func TestPurge(t *testing.T) {
	c := New(time.Minute)
	c.GetOrCompute(MembershipKey(types.Uid(50), types.Uid(1)), func() (interface{}, error) {
		return true, nil
	})
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Purge expected to drop all entries, found %d.", c.Len())
	}
}
