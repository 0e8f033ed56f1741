package analytics

import (
	"context"
	"sort"
	"time"

	"linkbio/internal/domain/blocks"
	"linkbio/internal/domain/errs"

	"gorm.io/gorm"
)

const (
	DefaultDays = 30
	MaxDays     = 365
)

type DailyCount struct {
	Date   string `json:"date"` // YYYY-MM-DD, UTC
	Views  int64  `json:"views"`
	Clicks int64  `json:"clicks"`
}

type BlockClicks struct {
	BlockID string `json:"block_id"`
	Type    string `json:"type,omitempty"` // empty once the block is deleted
	Clicks  int64  `json:"clicks"`
}

type Summary struct {
	Days      int           `json:"days"`
	Views     int64         `json:"views"`
	Clicks    int64         `json:"clicks"`
	ClickRate float64       `json:"click_rate"`
	Daily     []DailyCount  `json:"daily"`
	Blocks    []BlockClicks `json:"blocks"`
}

// Record stores one view or click for ownerID at the given time.
func Record(ctx context.Context, db *gorm.DB, ownerID uint, blockID *string, kind Kind, at time.Time) error {
	switch kind {
	case KindView:
	case KindClick:
		if blockID == nil || *blockID == "" {
			return errs.Validation("block_id", "is required for clicks")
		}
	default:
		return errs.Validation("kind", "must be one of: view, click")
	}

	ev := Event{
		OwnerID:   ownerID,
		BlockID:   blockID,
		Kind:      kind,
		CreatedAt: at.UTC(),
	}
	return errs.Store("record event", db.WithContext(ctx).Create(&ev).Error)
}

// Summarize aggregates the last `days` UTC days, today included.
func Summarize(ctx context.Context, db *gorm.DB, ownerID uint, days int, now time.Time) (*Summary, error) {
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(days - 1))

	var events []Event
	if err := db.WithContext(ctx).
		Select("block_id", "kind", "created_at").
		Where("owner_id = ? AND created_at >= ?", ownerID, since).
		Find(&events).Error; err != nil {
		return nil, errs.Store("load events", err)
	}

	out := &Summary{Days: days, Daily: make([]DailyCount, days), Blocks: make([]BlockClicks, 0)}
	byDate := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := since.AddDate(0, 0, i).Format(time.DateOnly)
		out.Daily[i].Date = d
		byDate[d] = i
	}

	clicks := map[string]int64{}
	for _, ev := range events {
		idx, ok := byDate[ev.CreatedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		switch ev.Kind {
		case KindView:
			out.Views++
			out.Daily[idx].Views++
		case KindClick:
			out.Clicks++
			out.Daily[idx].Clicks++
			if ev.BlockID != nil {
				clicks[*ev.BlockID]++
			}
		}
	}
	if out.Views > 0 {
		out.ClickRate = float64(out.Clicks) / float64(out.Views)
	}

	if len(clicks) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(clicks))
	for id := range clicks {
		ids = append(ids, id)
	}

	var owned []blocks.Block
	if err := db.WithContext(ctx).
		Select("id", "type").
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&owned).Error; err != nil {
		return nil, errs.Store("load clicked blocks", err)
	}
	types := make(map[string]blocks.Type, len(owned))
	for _, b := range owned {
		types[b.ID] = b.Type
	}

	for _, id := range ids {
		out.Blocks = append(out.Blocks, BlockClicks{BlockID: id, Type: string(types[id]), Clicks: clicks[id]})
	}
	sort.Slice(out.Blocks, func(i, j int) bool {
		if out.Blocks[i].Clicks != out.Blocks[j].Clicks {
			return out.Blocks[i].Clicks > out.Blocks[j].Clicks
		}
		return out.Blocks[i].BlockID < out.Blocks[j].BlockID
	})
	return out, nil
}

// Prune deletes events recorded before cutoff and reports how many went.
func Prune(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&Event{})
	if res.Error != nil {
		return 0, errs.Store("prune events", res.Error)
	}
	return res.RowsAffected, nil
}
