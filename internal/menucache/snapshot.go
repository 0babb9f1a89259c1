package menucache

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"carte-backend/internal/assembly"
)

// Snapshot est l'état caché du menu d'un tenant : les bundles par catégorie
// et l'horodatage de chargement.
type Snapshot struct {
	Bundles   map[uint]assembly.Bundle
	Timestamp time.Time
}

// Format persistant : tableau de paires [categoryId, bundle] plus un
// timestamp en millisecondes epoch.
type snapshotEnvelope struct {
	Bundles   []bundlePair `json:"bundles"`
	Timestamp int64        `json:"timestamp"`
}

type bundlePair struct {
	CategoryID uint
	Bundle     assembly.Bundle
}

func (p bundlePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.CategoryID, p.Bundle})
}

func (p *bundlePair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.CategoryID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Bundle)
}

func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot nil")
	}

	// paires triées par id de catégorie pour une sortie déterministe
	pairs := make([]bundlePair, 0, len(snap.Bundles))
	for id, b := range snap.Bundles {
		pairs = append(pairs, bundlePair{CategoryID: id, Bundle: b})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].CategoryID < pairs[j].CategoryID })

	return json.Marshal(snapshotEnvelope{
		Bundles:   pairs,
		Timestamp: snap.Timestamp.UnixMilli(),
	})
}

func DecodeSnapshot(raw []byte) (*Snapshot, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	bundles := make(map[uint]assembly.Bundle, len(env.Bundles))
	for _, p := range env.Bundles {
		bundles[p.CategoryID] = p.Bundle
	}
	return &Snapshot{
		Bundles:   bundles,
		Timestamp: time.UnixMilli(env.Timestamp),
	}, nil
}
