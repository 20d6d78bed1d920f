package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/roi-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

const (
	performanceRecordsTable = "performance_records pr"
)

type PerformanceRecordRepository interface {
	SaveOrUpdate(record *domain.PerformanceRecord) error
	GetByDateRange(start, end time.Time) ([]*domain.PerformanceRecord, error)
	GetByPlatformAndDateRange(platform string, start, end time.Time) ([]*domain.PerformanceRecord, error)
	DeleteOlderThan(days int) (int64, error)
	ListPlatformActivity() ([]*domain.PlatformActivity, error)
}

type performanceRecordRepository struct {
	conn *postgres.Connection
}

func NewPerformanceRecordRepository(conn *postgres.Connection) PerformanceRecordRepository {
	return &performanceRecordRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere o registro ou atualiza os contadores quando já existe
// uma linha para a mesma plataforma e instante.
func (r *performanceRecordRepository) SaveOrUpdate(record *domain.PerformanceRecord) error {
	var roi sql.NullFloat64
	if record.ROIPercentage != nil {
		roi = sql.NullFloat64{Float64: *record.ROIPercentage, Valid: true}
	}

	query := squirrel.StatementBuilder.
		Insert("performance_records").
		Columns(
			"platform", "occurred_at", "views", "likes", "comments", "shares",
			"clicks", "revenue_generated", "ad_spend", "cost_per_click", "roi_percentage",
		).
		Values(
			record.NormalizedPlatform(),
			record.OccurredAt,
			record.Views,
			record.Likes,
			record.Comments,
			record.Shares,
			record.Clicks,
			record.RevenueGenerated,
			record.AdSpend,
			record.CostPerClick,
			roi,
		).
		Suffix(`
			ON CONFLICT (platform, occurred_at) DO UPDATE SET
				views = EXCLUDED.views,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				shares = EXCLUDED.shares,
				clicks = EXCLUDED.clicks,
				revenue_generated = EXCLUDED.revenue_generated,
				ad_spend = EXCLUDED.ad_spend,
				cost_per_click = EXCLUDED.cost_per_click,
				roi_percentage = EXCLUDED.roi_percentage,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// GetByDateRange busca os registros no intervalo semiaberto [start, end),
// o mesmo contrato da janela de agregação.
func (r *performanceRecordRepository) GetByDateRange(start, end time.Time) ([]*domain.PerformanceRecord, error) {
	return r.queryRecords(squirrel.
		Select(recordColumns()).
		From(performanceRecordsTable).
		Where(squirrel.GtOrEq{"pr.occurred_at": start}).
		Where(squirrel.Lt{"pr.occurred_at": end}).
		OrderBy("pr.occurred_at ASC").
		PlaceholderFormat(squirrel.Dollar))
}

func (r *performanceRecordRepository) GetByPlatformAndDateRange(platform string, start, end time.Time) ([]*domain.PerformanceRecord, error) {
	return r.queryRecords(squirrel.
		Select(recordColumns()).
		From(performanceRecordsTable).
		Where(squirrel.Eq{"pr.platform": platform}).
		Where(squirrel.GtOrEq{"pr.occurred_at": start}).
		Where(squirrel.Lt{"pr.occurred_at": end}).
		OrderBy("pr.occurred_at ASC").
		PlaceholderFormat(squirrel.Dollar))
}

func (r *performanceRecordRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("performance_records").
		Where(squirrel.Lt{"occurred_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// ListPlatformActivity resume, por plataforma, quantos registros existem e o
// intervalo coberto.
func (r *performanceRecordRepository) ListPlatformActivity() ([]*domain.PlatformActivity, error) {
	query, args, err := squirrel.
		Select("pr.platform", "COUNT(*)", "MIN(pr.occurred_at)", "MAX(pr.occurred_at)").
		From(performanceRecordsTable).
		GroupBy("pr.platform").
		OrderBy("pr.platform ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	activities := make([]*domain.PlatformActivity, 0)
	for rows.Next() {
		activity := &domain.PlatformActivity{}
		var first, last sql.NullTime

		if err := rows.Scan(&activity.Platform, &activity.RecordCount, &first, &last); err != nil {
			return nil, fmt.Errorf("erro ao escanear atividade de plataforma: %w", err)
		}

		if first.Valid {
			activity.FirstRecordAt = &first.Time
		}
		if last.Valid {
			activity.LastRecordAt = &last.Time
		}

		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return activities, nil
}

func recordColumns() string {
	return "pr.id, pr.platform, pr.occurred_at, pr.views, pr.likes, pr.comments, pr.shares, " +
		"pr.clicks, pr.revenue_generated, pr.ad_spend, pr.cost_per_click, pr.roi_percentage, " +
		"pr.created_at, pr.updated_at"
}

func (r *performanceRecordRepository) queryRecords(builder squirrel.SelectBuilder) ([]*domain.PerformanceRecord, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.PerformanceRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear performance record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *performanceRecordRepository) scanRecord(rows *sql.Rows) (*domain.PerformanceRecord, error) {
	record := &domain.PerformanceRecord{}
	var roi sql.NullFloat64

	err := rows.Scan(
		&record.ID,
		&record.Platform,
		&record.OccurredAt,
		&record.Views,
		&record.Likes,
		&record.Comments,
		&record.Shares,
		&record.Clicks,
		&record.RevenueGenerated,
		&record.AdSpend,
		&record.CostPerClick,
		&roi,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if roi.Valid {
		value := roi.Float64
		record.ROIPercentage = &value
	}

	return record, nil
}
