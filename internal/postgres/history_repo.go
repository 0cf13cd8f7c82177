package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository — архив прошедших встреч. Ядро сессии сюда не пишет
// напрямую: записи создаются при завершении встречи и дальше read-only.
type HistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(ctx context.Context, m *domain.HistoricalMeeting) error {
	stats, err := json.Marshal(m.SpeakingStats)
	if err != nil {
		return fmt.Errorf("marshal speaking stats: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO meeting_history (id, date, participants, speaking_stats, duration_min)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET date = EXCLUDED.date,
		    participants = EXCLUDED.participants,
		    speaking_stats = EXCLUDED.speaking_stats,
		    duration_min = EXCLUDED.duration_min
	`, m.ID, m.Date, m.Participants, stats, m.Duration)
	return err
}

// List возвращает встречи по убыванию даты с курсорной пагинацией (date,id DESC).
func (r *HistoryRepository) List(ctx context.Context, limit int, cursorStr string) ([]domain.HistoricalMeeting, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	cur, err := DecodeCursor(cursorStr)
	if err != nil {
		return nil, "", err
	}

	const query = `
		SELECT id, date, participants, speaking_stats, duration_min
		FROM meeting_history
		WHERE ($1::timestamptz IS NULL OR date < $1
		       OR (date = $1 AND id < $2))
		ORDER BY date DESC, id DESC
		LIMIT $3`

	var date any
	var id any
	if cur != nil {
		date = cur.Date
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, query, date, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []domain.HistoricalMeeting
	for rows.Next() {
		var m domain.HistoricalMeeting
		var stats []byte
		if err := rows.Scan(&m.ID, &m.Date, &m.Participants, &stats, &m.Duration); err != nil {
			return nil, "", err
		}
		if len(stats) > 0 {
			if err := json.Unmarshal(stats, &m.SpeakingStats); err != nil {
				return nil, "", fmt.Errorf("unmarshal speaking stats: %w", err)
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(out) == limit {
		last := out[len(out)-1]
		if c, e := EncodeCursor(Cursor{Date: last.Date, ID: last.ID}); e == nil {
			next = c
		}
	}
	return out, next, nil
}
