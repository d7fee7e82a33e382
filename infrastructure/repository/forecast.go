package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/order-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-forecast-api/internal/domain"
)

const (
	forecastTable = "customer_order_forecast cof"
)

type ForecastRepository interface {
	// ListForecasts returns every forecast row joined with its customer
	// profile snapshot, ordered by predicted date ascending.
	ListForecasts() ([]*domain.ForecastRecord, error)
	// UpdateForecast applies the non-nil fields of the request. The bool
	// reports whether the target row existed.
	UpdateForecast(req *domain.UpdateForecastRequest) (bool, error)
	// DeleteForecast removes one forecast row. The bool reports whether
	// the target row existed.
	DeleteForecast(cofID int64) (bool, error)
}

type forecastRepository struct {
	conn *postgres.Connection
}

func NewForecastRepository(conn *postgres.Connection) ForecastRepository {
	return &forecastRepository{
		conn: conn,
	}
}

func (r *forecastRepository) ListForecasts() ([]*domain.ForecastRecord, error) {
	query, args, err := squirrel.
		Select(
			"cof.cof_id",
			"cof.customer_id",
			"cof.predicted_date",
			"cof.predicted_quantity",
			"cof.mape",
			"cof.prediction_model",
			"cof.probability",
			"cof.forecast_generation_datetime",
			"c.company_name",
			"c.name",
			"c.company_size",
		).
		From(forecastTable).
		LeftJoin("customers c ON c.customer_id = cof.customer_id").
		OrderBy("cof.predicted_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building forecast list query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying forecasts: %w", err)
	}
	defer rows.Close()

	forecasts := make([]*domain.ForecastRecord, 0)
	for rows.Next() {
		forecast, err := r.scanForecast(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning forecast row: %w", err)
		}
		forecasts = append(forecasts, forecast)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forecast rows: %w", err)
	}

	return forecasts, nil
}

func (r *forecastRepository) UpdateForecast(req *domain.UpdateForecastRequest) (bool, error) {
	builder := squirrel.StatementBuilder.
		Update("customer_order_forecast").
		Where(squirrel.Eq{"cof_id": req.CofID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.PredictedDate != nil {
		builder = builder.Set("predicted_date", *req.PredictedDate)
	}
	if req.PredictedQuantity != nil {
		builder = builder.Set("predicted_quantity", *req.PredictedQuantity)
	}
	if req.MAPE != nil {
		builder = builder.Set("mape", *req.MAPE)
	}
	if req.Probability != nil {
		builder = builder.Set("probability", *req.Probability)
	}
	if req.PredictionModel != nil {
		builder = builder.Set("prediction_model", *req.PredictionModel)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("building forecast update query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return false, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return false, fmt.Errorf("executing forecast update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *forecastRepository) DeleteForecast(cofID int64) (bool, error) {
	query, args, err := squirrel.
		Delete("customer_order_forecast").
		Where(squirrel.Eq{"cof_id": cofID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building forecast delete query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("executing forecast delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *forecastRepository) scanForecast(rows *sql.Rows) (*domain.ForecastRecord, error) {
	forecast := &domain.ForecastRecord{}

	var (
		predictedDate time.Time
		generatedAt   time.Time
		mape          sql.NullFloat64
		probability   sql.NullFloat64
		companyName   sql.NullString
		customerName  sql.NullString
		companySize   sql.NullString
	)

	err := rows.Scan(
		&forecast.CofID,
		&forecast.CustomerID,
		&predictedDate,
		&forecast.PredictedQuantity,
		&mape,
		&forecast.PredictionModel,
		&probability,
		&generatedAt,
		&companyName,
		&customerName,
		&companySize,
	)
	if err != nil {
		return nil, err
	}

	forecast.PredictedDate = predictedDate.Format(time.DateOnly)
	forecast.ForecastGenerationDate = generatedAt.Format(time.RFC3339)

	if mape.Valid {
		forecast.MAPE = &mape.Float64
	}
	if probability.Valid {
		forecast.Probability = &probability.Float64
	}
	if companyName.Valid {
		forecast.CompanyName = &companyName.String
	}
	if customerName.Valid {
		forecast.CustomerName = &customerName.String
	}
	if companySize.Valid {
		size := domain.CompanySize(companySize.String)
		forecast.CompanySize = &size
	}

	return forecast, nil
}
