package assistantRepository

import (
	"ShopAssist/internal/api/assistant"
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

type ConversationDB struct {
	ID        sql.NullString `db:"id"`
	Messages  []byte         `db:"messages"`
	Context   []byte         `db:"context"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (c ConversationDB) toEntity() entity.Conversation {
	result := entity.Conversation{
		ID:        c.ID.String,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}

	if len(c.Messages) > 0 {
		_ = jsoniter.Unmarshal(c.Messages, &result.Messages)
	}
	if len(c.Context) > 0 {
		_ = jsoniter.Unmarshal(c.Context, &result.Context)
	}

	return result
}

func conversationArgs(conversation entity.Conversation) (map[string]interface{}, error) {
	messages, err := jsoniter.Marshal(conversation.Messages)
	if err != nil {
		return nil, err
	}

	storedContext, err := jsoniter.Marshal(conversation.Context)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":         conversation.ID,
		"messages":   messages,
		"context":    storedContext,
		"created_at": conversation.CreatedAt,
		"updated_at": conversation.UpdatedAt,
	}, nil
}

func (r *conversationRepository) CreateConversation(c context.Context, conversation entity.Conversation) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV, err := conversationArgs(conversation)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to serialize conversation")
		return err
	}

	query, args, err := sqlx.Named(queryCreateConversation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateConversation")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         conversation.ID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation")
		return err
	}

	return nil
}

func (r *conversationRepository) GetConversationByID(c context.Context, id string) (entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ConversationDB

	query, args, err := sqlx.Named(queryGetConversationByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationByID named query preparation err")
		return entity.Conversation{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Conversation{}, assistant.ErrConversationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting conversation by ID")
		return entity.Conversation{}, err
	}

	return row.toEntity(), nil
}

func (r *conversationRepository) UpdateConversation(c context.Context, conversation entity.Conversation) error {
	requestID := contextPkg.GetRequestID(c)

	conversation.UpdatedAt = conversation.UpdatedAt.UTC()
	if conversation.UpdatedAt.IsZero() {
		conversation.UpdatedAt = time.Now().UTC()
	}

	argsKV, err := conversationArgs(conversation)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to serialize conversation")
		return err
	}
	delete(argsKV, "created_at")

	query, args, err := sqlx.Named(queryUpdateConversation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateConversation")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         conversation.ID,
			"error":      err.Error(),
		}).Error("Database error when updating conversation")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return assistant.ErrConversationNotFound
	}

	return nil
}
