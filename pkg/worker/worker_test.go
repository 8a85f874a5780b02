package worker

import (
	"context"
	"testing"
)

func TestCounterBumpIsMonotonic(t *testing.T) {
	var c Counter
	a := c.Bump()
	b := c.Bump()
	if !(a < b) {
		t.Fatalf("generations not strictly increasing: %d, %d", a, b)
	}
}

func TestStaleDetectsOlderGeneration(t *testing.T) {
	var c Counter
	gen := c.Bump()
	c.Bump()
	if !c.Stale(gen) {
		t.Fatalf("gen %d should be stale relative to current %d", gen, c.Current())
	}
}

func TestStaleResultDroppedOnDrain(t *testing.T) {
	var c Counter
	p := New(&c, 4)
	ctx := context.Background()

	p.Submit(ctx, "job1", func(ctx context.Context, gen Generation) any { return "first" })
	p.Wait()
	c.Bump() // make job1's captured generation stale

	p.Submit(ctx, "job2", func(ctx context.Context, gen Generation) any { return "second" })
	p.Wait()

	fresh := p.Drain()
	if len(fresh) != 1 || fresh[0].Label != "job2" {
		t.Fatalf("Drain() = %+v, want only job2", fresh)
	}
}

func TestDrainPreservesDeliveryOrderAmongFreshResults(t *testing.T) {
	var c Counter
	p := New(&c, 4)
	ctx := context.Background()

	p.Submit(ctx, "a", func(ctx context.Context, gen Generation) any { return 1 })
	p.Wait()
	p.Submit(ctx, "b", func(ctx context.Context, gen Generation) any { return 2 })
	p.Wait()

	fresh := p.Drain()
	if len(fresh) != 2 || fresh[0].Label != "a" || fresh[1].Label != "b" {
		t.Fatalf("Drain() = %+v, want [a, b] in order", fresh)
	}
}
