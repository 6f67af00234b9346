package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// SnapshotVersion is written into every snapshot. Snapshots without a version predate it and read as version 1.
const SnapshotVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Snapshot is the persisted shape of a cart. The open flag is deliberately not part of it.
type Snapshot struct {
	Version int               `json:"version,omitempty"`
	Items   []domain.LineItem `json:"items"`
}

func EncodeSnapshot(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(Snapshot{Version: SnapshotVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot failed: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a persisted snapshot. Line items with a non-positive quantity are dropped
// and items sharing a key are merged, so a hand-edited snapshot cannot break cart invariants.
func DecodeSnapshot(data []byte) ([]domain.LineItem, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}

	items := make([]domain.LineItem, 0, len(snap.Items))
	index := make(map[domain.ItemKey]int, len(snap.Items))
	for _, item := range snap.Items {
		if item.Quantity <= 0 || item.ID == "" {
			continue
		}
		if i, ok := index[item.Key()]; ok {
			items[i].Quantity += item.Quantity
			continue
		}
		index[item.Key()] = len(items)
		items = append(items, item)
	}
	return items, nil
}
