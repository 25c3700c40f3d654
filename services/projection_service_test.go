package services

import (
	"context"
	"errors"
	"reflect"
	"rentvsbuy/types"
	"testing"

	"github.com/patrickmn/go-cache"
)

func TestProjectionService_RejectsInvalidInputs(t *testing.T) {
	svc := NewProjectionService(nil)
	in := sampleInputs()
	in.MortgageYears = 12

	_, err := svc.Project(context.Background(), in)
	if !errors.Is(err, types.ErrInvalidInputs) {
		t.Errorf("Expected ErrInvalidInputs, got %v", err)
	}
}

func TestProjectionService_MatchesEngine(t *testing.T) {
	svc := NewProjectionService(nil)
	in := sampleInputs()

	result, err := svc.Project(context.Background(), in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expected := Project(in); !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %+v, got %+v", expected, result)
	}
}

func TestProjectionService_MemoizesByInputs(t *testing.T) {
	c := cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	svc := NewProjectionService(c)
	in := sampleInputs()

	first, err := svc.Project(context.Background(), in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := svc.Project(context.Background(), in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical projections for identical inputs")
	}
	if c.ItemCount() != 1 {
		t.Errorf("Expected 1 cached projection, got %d", c.ItemCount())
	}

	in.Rent = 1600
	if _, err := svc.Project(context.Background(), in); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.ItemCount() != 2 {
		t.Errorf("Expected 2 cached projections, got %d", c.ItemCount())
	}
}

func TestCacheKey_DistinguishesInputs(t *testing.T) {
	a := sampleInputs()
	b := sampleInputs()
	b.IsYoungerThan32 = !a.IsYoungerThan32

	if cacheKey(a) == cacheKey(b) {
		t.Errorf("Expected different keys for different inputs")
	}
	if cacheKey(a) != cacheKey(sampleInputs()) {
		t.Errorf("Expected equal keys for equal inputs")
	}
}
