package menucache

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"carte-backend/internal/assembly"
	"carte-backend/internal/models"
)

func TestSnapshotEncoding_PairFormat(t *testing.T) {
	snap := &Snapshot{
		Bundles: map[uint]assembly.Bundle{
			2: {Category: models.Category{ID: 2, Title: "Desserts"}},
			1: {Category: models.Category{ID: 1, Title: "Plats"}},
		},
		Timestamp: time.UnixMilli(1700000000000),
	}

	raw, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	// le format persistant est un tableau de paires [categoryId, bundle]
	var env struct {
		Bundles   []json.RawMessage `json:"bundles"`
		Timestamp int64             `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Timestamp != 1700000000000 {
		t.Errorf("timestamp = %d, want epoch ms", env.Timestamp)
	}
	if len(env.Bundles) != 2 {
		t.Fatalf("bundles = %d, want 2", len(env.Bundles))
	}
	// paires triées par id de catégorie
	if !strings.HasPrefix(string(env.Bundles[0]), "[1,") {
		t.Errorf("first pair = %s, want [1, ...]", env.Bundles[0])
	}

	back, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if !back.Timestamp.Equal(snap.Timestamp) {
		t.Errorf("timestamp roundtrip = %v, want %v", back.Timestamp, snap.Timestamp)
	}
	if got := back.Bundles[2].Category.Title; got != "Desserts" {
		t.Errorf("bundle 2 title = %q, want Desserts", got)
	}
}

func TestDecodeSnapshot_Corrupt(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"bundles":[42],"timestamp":0}`)); err == nil {
		t.Error("corrupt pair should fail to decode")
	}
	if _, err := DecodeSnapshot([]byte(`not json`)); err == nil {
		t.Error("garbage should fail to decode")
	}
}
