// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestOwnerIDCtxKey(t *testing.T) {
	if OwnerIDCtxKey.String() != "ownerID" {
		t.Errorf("expected 'ownerID', got '%s'", OwnerIDCtxKey.String())
	}
}

func TestGetOwnerIDFromContext_Success(t *testing.T) {
	ctx := WithOwnerID(context.Background(), "owner-42")

	ownerID, ok := GetOwnerIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if ownerID != "owner-42" {
		t.Errorf("expected ownerID=owner-42, got %s", ownerID)
	}
}

func TestGetOwnerIDFromContext_Missing(t *testing.T) {
	ownerID, ok := GetOwnerIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if ownerID != "" {
		t.Errorf("expected empty ownerID, got %s", ownerID)
	}
}

func TestGetOwnerIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), OwnerIDCtxKey, int64(42))

	if _, ok := GetOwnerIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetOwnerIDFromContext_Empty(t *testing.T) {
	ctx := WithOwnerID(context.Background(), "")

	if _, ok := GetOwnerIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty owner, got true")
	}
}

func TestGetOwnerIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "owner")

	if _, ok := GetOwnerIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
