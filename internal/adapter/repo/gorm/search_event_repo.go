package gormrepo

import (
	"context"
	"time"

	"orefinder/internal/adapter/repo/gorm/model"
	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchEventRepo struct {
	db *gorm.DB
}

func NewSearchEventRepo(db *gorm.DB) SearchEventRepo {
	return SearchEventRepo{db: db}
}

func (r SearchEventRepo) Append(ctx context.Context, evt ports.SearchEvent) error {
	row := model.SearchEvent{
		EntityID:   evt.EntityID,
		WorldID:    evt.WorldID,
		OriginX:    int32(evt.Origin.X),
		OriginY:    int32(evt.Origin.Y),
		OriginZ:    int32(evt.Origin.Z),
		Target:     evt.Target,
		Found:      evt.Found,
		Distance:   int32(evt.Distance),
		AtX:        int32(evt.At.X),
		AtY:        int32(evt.At.Y),
		AtZ:        int32(evt.At.Z),
		Band:       evt.Band,
		Stolen:     evt.Stolen,
		OccurredAt: evt.OccurredAt,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error
}

func (r SearchEventRepo) ListByEntityID(ctx context.Context, entityID int64, window ports.EventWindow, limit int) ([]ports.SearchEvent, error) {
	rows := []model.SearchEvent{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.SearchEvent{EntityID: entityID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if window.From > 0 {
		query = query.Where("occurred_at >= ?", time.Unix(window.From, 0))
	}
	if window.To > 0 {
		// To is inclusive at second granularity.
		query = query.Where("occurred_at < ?", time.Unix(window.To+1, 0))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.SearchEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.SearchEvent{
			EntityID:   row.EntityID,
			WorldID:    row.WorldID,
			Origin:     voxel.Point{X: int(row.OriginX), Y: int(row.OriginY), Z: int(row.OriginZ)},
			Target:     row.Target,
			Found:      row.Found,
			Distance:   int(row.Distance),
			At:         voxel.Point{X: int(row.AtX), Y: int(row.AtY), Z: int(row.AtZ)},
			Band:       row.Band,
			Stolen:     row.Stolen,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
