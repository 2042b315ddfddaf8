package repositories

import (
	"context"
	"time"

	"advisor/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestLogRepository interface {
	Create(ctx context.Context, log *models.RequestLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type requestLogRepo struct {
	DB *pgxpool.Pool
}

func NewRequestLogRepository(db *pgxpool.Pool) RequestLogRepository {
	return &requestLogRepo{DB: db}
}

func (r *requestLogRepo) Create(ctx context.Context, log *models.RequestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	var responsePayload *string
	if len(log.ResponsePayload) > 0 {
		payload := string(log.ResponsePayload)
		responsePayload = &payload
	}
	requestPayload := "{}"
	if len(log.RequestPayload) > 0 {
		requestPayload = string(log.RequestPayload)
	}

	return r.DB.QueryRow(ctx, `
		INSERT INTO request_logs (id, url, method, request_payload, response_payload, status_code, success)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
		RETURNING timestamp`,
		log.ID, log.URL, log.Method, requestPayload, responsePayload, log.StatusCode, log.Success,
	).Scan(&log.Timestamp)
}

func (r *requestLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM request_logs WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
