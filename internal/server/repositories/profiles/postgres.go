package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/patientauth/internal/dbx"
	"github.com/dmitrijs2005/patientauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.ProfileDetails) (*models.InsertResult, error) {
	query :=
		`INSERT INTO patient_details (user_id, fullname, age, gender, weight_in_kg, height_cm, phone, address)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING user_id
		 `

	rows, err := r.db.QueryContext(ctx, query,
		p.UserID, p.FullName, p.Age, p.Gender, p.WeightKg, p.HeightCm, p.Phone, p.Address)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := &models.InsertResult{Command: "INSERT", Rows: []models.ProfileRow{}}
	for rows.Next() {
		var row models.ProfileRow
		if err := rows.Scan(&row.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	result.RowCount = len(result.Rows)

	return result, nil
}
