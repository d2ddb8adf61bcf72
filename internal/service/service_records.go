package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/internal/utils"
	"github.com/MKhiriev/go-local-sync/models"
)

// recordsService is the application-facing CRUD surface. Writes take the
// same exclusive writer lock as sync rounds, so at most one of the two
// proceeds at a time; reads run concurrently against a consistent snapshot.
type recordsService struct {
	storages *store.Storages
	guids    *utils.GUIDGenerator
	logger   *logger.Logger
}

func NewRecordsService(storages *store.Storages, log *logger.Logger) RecordsService {
	return &recordsService{
		storages: storages,
		guids:    utils.NewGUIDGenerator(),
		logger:   log.GetChildLogger("records"),
	}
}

// Create stores a new record under a freshly generated GUID and returns it.
func (s *recordsService) Create(ctx context.Context, collection models.Collection, payload []byte) (string, error) {
	guid := s.guids.Generate()
	if err := s.Save(ctx, collection, guid, payload); err != nil {
		return "", err
	}
	return guid, nil
}

// Save writes a create-or-update for guid, stamping the GUID into the
// payload document and bumping the change counter. Reserved bookmark roots
// are immutable and reject the write.
func (s *recordsService) Save(ctx context.Context, collection models.Collection, guid string, payload []byte) error {
	if !utils.ValidGUID(guid) {
		return fmt.Errorf("%w: %q", ErrInvalidGUID, guid)
	}
	if collection == models.CollectionBookmarks && models.IsRoot(guid) {
		return ErrRootImmutable
	}
	if err := validatePayload(collection, payload); err != nil {
		return err
	}

	payload, err := rewritePayloadGUID(payload, guid)
	if err != nil {
		return err
	}

	records, err := s.storages.Records(collection)
	if err != nil {
		return err
	}

	release, err := s.storages.AcquireWriter()
	if err != nil {
		return err
	}
	defer release()

	return records.Save(ctx, guid, payload, utils.NowMillis())
}

// Delete marks guid as a pending tombstone so the deletion propagates on the
// next round. Reserved bookmark roots reject the delete.
func (s *recordsService) Delete(ctx context.Context, collection models.Collection, guid string) error {
	if !utils.ValidGUID(guid) {
		return fmt.Errorf("%w: %q", ErrInvalidGUID, guid)
	}
	if collection == models.CollectionBookmarks && models.IsRoot(guid) {
		return ErrRootImmutable
	}

	records, err := s.storages.Records(collection)
	if err != nil {
		return err
	}

	release, err := s.storages.AcquireWriter()
	if err != nil {
		return err
	}
	defer release()

	return records.Delete(ctx, guid, utils.NowMillis())
}

func (s *recordsService) Get(ctx context.Context, collection models.Collection, guid string) (models.LocalRecord, error) {
	records, err := s.storages.Records(collection)
	if err != nil {
		return models.LocalRecord{}, err
	}
	return records.GetLocal(ctx, guid)
}

// List returns every live local record; pending tombstones are filtered out.
func (s *recordsService) List(ctx context.Context, collection models.Collection) ([]models.LocalRecord, error) {
	records, err := s.storages.Records(collection)
	if err != nil {
		return nil, err
	}

	all, err := records.GetAllLocal(ctx)
	if err != nil {
		return nil, err
	}

	live := all[:0]
	for _, rec := range all {
		if !rec.Deleted {
			live = append(live, rec)
		}
	}
	return live, nil
}

// validatePayload checks that the payload document decodes into the
// collection's record type.
func validatePayload(collection models.Collection, payload []byte) error {
	var err error
	switch collection {
	case models.CollectionHistory:
		var doc models.HistoryRecord
		err = json.Unmarshal(payload, &doc)
	case models.CollectionBookmarks:
		var node models.BookmarkNode
		if err = json.Unmarshal(payload, &node); err == nil && !node.Kind.Valid() {
			return fmt.Errorf("%w: unknown bookmark kind %d", ErrInvalidPayload, node.Kind)
		}
	case models.CollectionMeta:
		var entry models.MetaEntry
		err = json.Unmarshal(payload, &entry)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}
