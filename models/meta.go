// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MetaEntry is the payload document of one meta-collection record: a small
// key-value pair synchronized with pure last-writer-wins semantics.
type MetaEntry struct {
	GUID string `json:"id"`

	Key   string `json:"key"`
	Value string `json:"value"`

	// Modified is the client wall-clock of the last write, milliseconds
	// since the epoch. The newer side wins the whole record.
	Modified int64 `json:"modified"`
}
