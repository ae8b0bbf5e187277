package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

const contentItemCols = `id, name, filename, url, kind, mime_type, file_size, duration, display_duration, scale_mode, position, is_active, schedule_group_id, content_group_id, created_at, updated_at`

// CreateContentItem inserts an uploaded item at the end of its owning
// group's order. Exactly one of ScheduleGroupID/ContentGroupID must be set.
func (s *pgStore) CreateContentItem(item model.ContentItem) (model.ContentItem, error) {
	ownerCol, ownerID, err := ownerOf(item)
	if err != nil {
		return model.ContentItem{}, err
	}

	var out model.ContentItem
	q := `
	INSERT INTO content_items
	  (name, filename, url, kind, mime_type, file_size, duration, display_duration, scale_mode, position, is_active, ` + ownerCol + `, created_at, updated_at)
	VALUES
	  ($1, $2, $3, $4, $5, $6, $7, $8, $9,
	   (SELECT COUNT(*) FROM content_items WHERE ` + ownerCol + ` = $10),
	   true, $10, now(), now())
	RETURNING ` + contentItemCols + `;`
	if err := s.db.Get(&out, q,
		item.Name, item.Filename, item.URL, item.Kind, item.MimeType,
		item.FileSize, item.Duration, item.DisplayDuration, item.ScaleMode, ownerID,
	); err != nil {
		log.Error().Err(err).Msg("CreateContentItem failed")
		return model.ContentItem{}, err
	}
	return out, nil
}

func ownerOf(item model.ContentItem) (string, int, error) {
	switch {
	case item.ScheduleGroupID != nil && item.ContentGroupID == nil:
		return "schedule_group_id", *item.ScheduleGroupID, nil
	case item.ContentGroupID != nil && item.ScheduleGroupID == nil:
		return "content_group_id", *item.ContentGroupID, nil
	default:
		return "", 0, fmt.Errorf("content item must belong to exactly one group")
	}
}

func (s *pgStore) GetContentItem(id int) (model.ContentItem, error) {
	var it model.ContentItem
	err := s.db.Get(&it, `SELECT `+contentItemCols+` FROM content_items WHERE id = $1;`, id)
	if err != nil {
		return model.ContentItem{}, notFound(err)
	}
	return it, nil
}

func (s *pgStore) listItemsForOwner(ownerCol string, ownerID int) ([]model.ContentItem, error) {
	var out []model.ContentItem
	q := `SELECT ` + contentItemCols + ` FROM content_items WHERE ` + ownerCol + ` = $1 ORDER BY position;`
	if err := s.db.Select(&out, q, ownerID); err != nil {
		log.Error().Err(err).Int("owner_id", ownerID).Msg("listItemsForOwner failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateContentItem(id int, name *string, displayDuration *float64, scaleMode *string, isActive *bool) error {
	res, err := s.db.Exec(`
		UPDATE content_items
		SET name = COALESCE($2, name),
		display_duration = COALESCE($3, display_duration),
		scale_mode = COALESCE($4, scale_mode),
		is_active = COALESCE($5, is_active),
		updated_at = now()
		WHERE id = $1;`, id, name, displayDuration, scaleMode, isActive)
	if err != nil {
		log.Error().Err(err).Int("item_id", id).Msg("UpdateContentItem failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContentItem removes the row and compacts the remaining positions so
// they stay contiguous. The deleted item is returned so the caller can
// remove the backing file.
func (s *pgStore) DeleteContentItem(id int) (model.ContentItem, error) {
	it, err := s.GetContentItem(id)
	if err != nil {
		return model.ContentItem{}, err
	}
	ownerCol, ownerID, err := ownerOf(it)
	if err != nil {
		return model.ContentItem{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return model.ContentItem{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM content_items WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("item_id", id).Msg("DeleteContentItem failed")
		return model.ContentItem{}, err
	}
	if _, err = tx.Exec(`
		UPDATE content_items
		   SET position = position - 1
		 WHERE `+ownerCol+` = $1 AND position > $2;`, ownerID, it.Position); err != nil {
		return model.ContentItem{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.ContentItem{}, err
	}
	return it, nil
}

// mergeReorder computes the final id order for a reorder submission: the
// submitted ids first (deduplicated, ids outside the group dropped), then any
// of the group's items the submission omitted, keeping their stored relative
// order. The result's index is the item's new position.
func mergeReorder(current []model.ContentItem, itemIDs []int) []int {
	inGroup := make(map[int]bool, len(current))
	for _, it := range current {
		inGroup[it.ID] = true
	}

	order := make([]int, 0, len(current))
	seen := make(map[int]bool, len(current))
	for _, id := range itemIDs {
		if inGroup[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, it := range current {
		if !seen[it.ID] {
			order = append(order, it.ID)
		}
	}
	return order
}

func (s *pgStore) ReorderScheduleGroupItems(groupID int, itemIDs []int) error {
	return s.reorderItems("schedule_group_id", groupID, itemIDs)
}

func (s *pgStore) ReorderContentGroupItems(groupID int, itemIDs []int) error {
	return s.reorderItems("content_group_id", groupID, itemIDs)
}

// reorderItems assigns contiguous positions in the submitted order inside one
// transaction. Items of the group missing from the submission keep their
// relative order after the submitted ones; ids from other groups are ignored.
func (s *pgStore) reorderItems(ownerCol string, ownerID int, itemIDs []int) (err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var current []model.ContentItem
	if err = tx.Select(&current, `
		SELECT `+contentItemCols+`
		  FROM content_items
		 WHERE `+ownerCol+` = $1
		 ORDER BY position
		 FOR UPDATE;`, ownerID); err != nil {
		log.Error().Err(err).Int("owner_id", ownerID).Msg("reorderItems failed")
		return err
	}

	order := mergeReorder(current, itemIDs)

	// park positions out of the way first so the unique constraint holds
	if _, err = tx.Exec(`
		UPDATE content_items
		   SET position = position + $2
		 WHERE `+ownerCol+` = $1;`, ownerID, len(order)); err != nil {
		return err
	}
	for idx, id := range order {
		if _, err = tx.Exec(`
			UPDATE content_items
			   SET position = $2, updated_at = now()
			 WHERE id = $1;`, id, idx); err != nil {
			return err
		}
	}
	return nil
}
