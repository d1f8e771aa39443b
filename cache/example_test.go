package cache_test

import (
	"fmt"
	"time"

	"bookery/cache"
)

// Example 演示只读查询缓存的典型用法。
func Example() {
	type Room struct {
		ID   int64
		Name string
	}

	c := cache.New[int64, *Room](cache.Config{
		Name:    "room_read",
		MaxSize: 100,
		TTL:     time.Minute,
	})

	c.Set(1, &Room{ID: 1, Name: "Ocean View"})

	if room, found := c.Get(1); found {
		fmt.Println(room.Name)
	}
	if _, found := c.Get(2); !found {
		fmt.Println("miss")
	}

	// Output:
	// Ocean View
	// miss
}

// ExampleCache_Stats 演示统计信息的读取。
func ExampleCache_Stats() {
	c := cache.New[string, int](cache.Config{Name: "counters", MaxSize: 10})

	c.Set("a", 1)
	c.Get("a")
	c.Get("b")

	stats := c.Stats()
	fmt.Printf("hits=%d misses=%d size=%d\n", stats.Hits, stats.Misses, stats.Size)

	// Output:
	// hits=1 misses=1 size=1
}
