// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BookmarkKind discriminates the three node types of the bookmark tree.
type BookmarkKind int

const (
	KindBookmark BookmarkKind = iota + 1
	KindFolder
	KindSeparator
)

// Valid reports whether k names a known node type.
func (k BookmarkKind) Valid() bool {
	return k >= KindBookmark && k <= KindSeparator
}

// Reserved root GUIDs. The tree root has no parent; the four user-content
// roots are its only children. None of the five may be deleted, retitled,
// or reparented.
const (
	RootGUID        = "root________"
	MenuRootGUID    = "menu________"
	ToolbarRootGUID = "toolbar_____"
	UnfiledRootGUID = "unfiled_____"
	MobileRootGUID  = "mobile______"
)

// RootGUIDs returns the five reserved roots, tree root first.
func RootGUIDs() []string {
	return []string{RootGUID, MenuRootGUID, ToolbarRootGUID, UnfiledRootGUID, MobileRootGUID}
}

// IsRoot reports whether guid names one of the five reserved roots.
func IsRoot(guid string) bool {
	switch guid {
	case RootGUID, MenuRootGUID, ToolbarRootGUID, UnfiledRootGUID, MobileRootGUID:
		return true
	}
	return false
}

// BookmarkNode is the payload document of one bookmarks-collection record.
type BookmarkNode struct {
	GUID string `json:"id"`

	// ParentGUID is empty only for the tree root.
	ParentGUID string `json:"parentid,omitempty"`

	// Position is the dense zero-based rank among siblings.
	Position int `json:"position"`

	Kind BookmarkKind `json:"kind"`

	Title string `json:"title,omitempty"`

	// URL is set only for KindBookmark nodes.
	URL string `json:"url,omitempty"`

	// TitleModified is the timestamp of the last title edit, used by the
	// last-writer-wins merge policy for titles.
	TitleModified int64 `json:"title_modified,omitempty"`
}
