// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-local-sync/models"
)

// payloadMerger combines the local and incoming versions of one record's
// payload against their shared ancestor (the mirror copy). A nil base means
// the ancestor is lost and the merge degrades to two-way against zero values.
//
// Returning [errUnmergeable] signals a field conflict with no policy
// resolution; the reconciler answers it by forking the local version under a
// new GUID so neither side is dropped.
type payloadMerger interface {
	merge(local, base, incoming []byte) ([]byte, error)
}

// historyMerger merges flat history records: URL is identity and cannot be
// merged, title is last-writer-wins by edit timestamp, visits are a set
// union keyed on (date, type).
type historyMerger struct{}

func (historyMerger) merge(local, base, incoming []byte) ([]byte, error) {
	var l, b, in models.HistoryRecord
	if err := decodePayloads(local, base, incoming, &l, &b, &in); err != nil {
		return nil, err
	}

	url, err := mergeScalar(l.URL, b.URL, in.URL)
	if err != nil {
		return nil, err
	}

	merged := models.HistoryRecord{
		GUID:   l.GUID,
		URL:    url,
		Visits: unionVisits(l.Visits, in.Visits),
	}
	merged.Title, merged.TitleModified = mergeByTimestamp(
		l.Title, b.Title, in.Title, l.TitleModified, in.TitleModified)

	return json.Marshal(merged)
}

// metaMerger merges key-value entries with pure last-writer-wins: the side
// with the newer modification timestamp wins the whole record, ties going to
// the incoming side.
type metaMerger struct{}

func (metaMerger) merge(local, base, incoming []byte) ([]byte, error) {
	var l, in models.MetaEntry
	if err := decodePayloads(local, nil, incoming, &l, nil, &in); err != nil {
		return nil, err
	}

	if l.Modified > in.Modified {
		return local, nil
	}
	return incoming, nil
}

// bookmarkMerger merges tree nodes field-wise: kind and URL are identity
// (conflicts fork), title is last-writer-wins, and structure (parent and
// position) resolves in the remote's favor when both sides moved the node,
// since the remote structure has already been applied on other devices.
type bookmarkMerger struct{}

func (bookmarkMerger) merge(local, base, incoming []byte) ([]byte, error) {
	var l, b, in models.BookmarkNode
	if err := decodePayloads(local, base, incoming, &l, &b, &in); err != nil {
		return nil, err
	}

	if l.Kind != in.Kind {
		return nil, errUnmergeable
	}

	url, err := mergeScalar(l.URL, b.URL, in.URL)
	if err != nil {
		return nil, err
	}

	merged := models.BookmarkNode{
		GUID: l.GUID,
		Kind: l.Kind,
		URL:  url,
	}
	merged.Title, merged.TitleModified = mergeByTimestamp(
		l.Title, b.Title, in.Title, l.TitleModified, in.TitleModified)

	merged.ParentGUID, merged.Position = in.ParentGUID, in.Position
	localMoved := l.ParentGUID != b.ParentGUID || l.Position != b.Position
	incomingMoved := in.ParentGUID != b.ParentGUID || in.Position != b.Position
	if localMoved && !incomingMoved {
		merged.ParentGUID, merged.Position = l.ParentGUID, l.Position
	}

	return json.Marshal(merged)
}

// mergeScalar is the three-way rule for an unmergeable identity field: the
// side that diverged from the base wins; both diverging differently is a
// conflict.
func mergeScalar(local, base, incoming string) (string, error) {
	switch {
	case local == incoming:
		return local, nil
	case local == base:
		return incoming, nil
	case incoming == base:
		return local, nil
	}
	return "", errUnmergeable
}

// mergeByTimestamp is the three-way rule for a last-writer-wins field: the
// side that diverged from the base wins, and when both diverged the newer
// edit wins, ties going to the incoming side.
func mergeByTimestamp(local, base, incoming string, localTS, incomingTS int64) (string, int64) {
	switch {
	case local == incoming:
		return local, max(localTS, incomingTS)
	case local == base:
		return incoming, incomingTS
	case incoming == base:
		return local, localTS
	case localTS > incomingTS:
		return local, localTS
	}
	return incoming, incomingTS
}

func unionVisits(a, b []models.Visit) []models.Visit {
	type key struct {
		date int64
		typ  models.VisitType
	}

	seen := make(map[key]struct{}, len(a)+len(b))
	var out []models.Visit
	for _, visits := range [][]models.Visit{a, b} {
		for _, v := range visits {
			k := key{v.Date, v.Type}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Type < out[j].Type
	})

	return out
}

// decodePayloads unmarshals the three sides of a merge. base and its
// destination may be nil for a two-way merge; the zero value then stands in
// for the lost ancestor.
func decodePayloads(local, base, incoming []byte, l, b, in any) error {
	if err := json.Unmarshal(local, l); err != nil {
		return fmt.Errorf("%w: local side: %w", ErrInvalidPayload, err)
	}
	if len(base) > 0 && b != nil {
		if err := json.Unmarshal(base, b); err != nil {
			return fmt.Errorf("%w: mirror side: %w", ErrInvalidPayload, err)
		}
	}
	if err := json.Unmarshal(incoming, in); err != nil {
		return fmt.Errorf("%w: incoming side: %w", ErrInvalidPayload, err)
	}
	return nil
}
