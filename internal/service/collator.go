// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sort"

	"github.com/MKhiriev/go-local-sync/models"
)

// collate joins the local, mirror, and staging snapshots into one triple per
// GUID appearing in any of the three, ordered by GUID so reconciliation is
// deterministic and replayable.
func collate(local []models.LocalRecord, mirror []models.MirrorRecord, staged []models.StagedRecord) []models.RecordTriple {
	triples := make(map[string]*models.RecordTriple, len(local)+len(staged))

	get := func(guid string) *models.RecordTriple {
		if t, ok := triples[guid]; ok {
			return t
		}
		t := &models.RecordTriple{GUID: guid}
		triples[guid] = t
		return t
	}

	for i := range local {
		get(local[i].GUID).Local = &local[i]
	}
	for i := range mirror {
		get(mirror[i].GUID).Mirror = &mirror[i]
	}
	for i := range staged {
		get(staged[i].GUID).Incoming = &staged[i]
	}

	guids := make([]string, 0, len(triples))
	for guid := range triples {
		guids = append(guids, guid)
	}
	sort.Strings(guids)

	out := make([]models.RecordTriple, 0, len(guids))
	for _, guid := range guids {
		out = append(out, *triples[guid])
	}

	return out
}
