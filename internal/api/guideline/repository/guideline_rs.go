package guidelineRepository

import (
	"ShopAssist/internal/api/guideline"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type GuidelineDB struct {
	ID         sql.NullString `db:"id"`
	Name       sql.NullString `db:"name"`
	Content    sql.NullString `db:"content"`
	Priority   sql.NullInt64  `db:"priority"`
	Category   sql.NullString `db:"category"`
	IsActive   sql.NullBool   `db:"is_active"`
	Tags       []byte         `db:"tags"`
	Conditions []byte         `db:"conditions"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (g GuidelineDB) toEntity() entity.Guideline {
	result := entity.Guideline{
		ID:        g.ID.String,
		Name:      g.Name.String,
		Content:   g.Content.String,
		Priority:  int(g.Priority.Int64),
		Category:  g.Category.String,
		IsActive:  g.IsActive.Bool,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	if len(g.Tags) > 0 {
		_ = jsoniter.Unmarshal(g.Tags, &result.Tags)
	}
	if len(g.Conditions) > 0 {
		_ = jsoniter.Unmarshal(g.Conditions, &result.Conditions)
	}

	return result
}

func guidelineArgs(g entity.Guideline) (map[string]interface{}, error) {
	tags, err := jsoniter.Marshal(g.Tags)
	if err != nil {
		return nil, err
	}
	conditions, err := jsoniter.Marshal(g.Conditions)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":         g.ID,
		"name":       g.Name,
		"content":    g.Content,
		"priority":   g.Priority,
		"category":   g.Category,
		"is_active":  g.IsActive,
		"tags":       tags,
		"conditions": conditions,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}, nil
}

func (r *guidelineRepository) CreateGuideline(c context.Context, g entity.Guideline) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV, err := guidelineArgs(g)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal guideline fields")
		return err
	}

	query, args, err := sqlx.Named(queryCreateGuideline, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateGuideline")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating guideline")
		return err
	}

	return nil
}

func (r *guidelineRepository) GetGuidelineByID(c context.Context, id string) (entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(c)
	var row GuidelineDB

	query, args, err := sqlx.Named(queryGetGuidelineByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGuidelineByID named query preparation err")
		return entity.Guideline{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Guideline{}, guideline.ErrGuidelineNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting guideline by ID")
		return entity.Guideline{}, err
	}

	return row.toEntity(), nil
}

func (r *guidelineRepository) GetAllGuidelines(c context.Context) ([]entity.Guideline, error) {
	return r.selectGuidelines(c, queryGetAllGuidelines)
}

func (r *guidelineRepository) GetActiveGuidelines(c context.Context) ([]entity.Guideline, error) {
	return r.selectGuidelines(c, queryGetActiveGuidelines)
}

func (r *guidelineRepository) selectGuidelines(c context.Context, baseQuery string) ([]entity.Guideline, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []GuidelineDB

	query := r.q.Rebind(baseQuery)
	if err := r.q.SelectContext(c, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when selecting guidelines")
		return nil, err
	}

	guidelines := make([]entity.Guideline, 0, len(rows))
	for _, row := range rows {
		guidelines = append(guidelines, row.toEntity())
	}

	return guidelines, nil
}

func (r *guidelineRepository) UpdateGuideline(c context.Context, g entity.Guideline) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV, err := guidelineArgs(g)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal guideline fields")
		return err
	}
	delete(argsKV, "created_at")

	query, args, err := sqlx.Named(queryUpdateGuideline, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateGuideline")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating guideline")
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return guideline.ErrGuidelineNotFound
	}

	return nil
}

func (r *guidelineRepository) DeleteGuideline(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteGuideline, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteGuideline")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting guideline")
		return err
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return guideline.ErrGuidelineNotFound
	}

	return nil
}
