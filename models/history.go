// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VisitType mirrors the transition kinds the remote protocol distinguishes.
type VisitType int

const (
	VisitLink VisitType = iota + 1
	VisitTyped
	VisitBookmark
	VisitRedirect
)

// Visit is one page visit. Visits merge by set union keyed on (Date, Type),
// so re-applying the same remote record never duplicates them.
type Visit struct {
	// Date is the visit time in milliseconds since the epoch.
	Date int64 `json:"date"`

	Type VisitType `json:"type"`
}

// HistoryRecord is the payload document of one history-collection record.
type HistoryRecord struct {
	GUID string `json:"id"`

	// URL identifies the page. It cannot be merged field-wise: when local
	// and incoming disagree on the URL the reconciler forks the record
	// under a new GUID instead of dropping either side.
	URL string `json:"histUri"`

	Title string `json:"title,omitempty"`

	// TitleModified drives the last-writer-wins policy for Title.
	TitleModified int64 `json:"title_modified,omitempty"`

	Visits []Visit `json:"visits,omitempty"`
}
