package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormClientRepository_FindByIDForCompany(t *testing.T) {
	t.Run("scopes the lookup to the company", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		companyID := uuid.New()
		clientID := uuid.New()
		repo := NewGormClientRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "company_id", "name", "email", "phone"}).
			AddRow(clientID, time.Now(), time.Now(), companyID, "Acme GmbH", "billing@acme.example", "")

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByIDForCompany(context.Background(), companyID, clientID)
		require.NoError(t, err)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, companyID, client.CompanyID)
		assert.Equal(t, "Acme GmbH", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a miss to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		companyID := uuid.New()
		clientID := uuid.New()
		repo := NewGormClientRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByIDForCompany(context.Background(), companyID, clientID)
		assert.Nil(t, client)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormClientRepository_HasDocuments(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()
	ctx := context.Background()

	t.Run("true when a quote references the client", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "quotes" WHERE company_id = \$1 AND client_id = \$2`).
			WithArgs(companyID, clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

		has, err := repo.HasDocuments(ctx, companyID, clientID)
		require.NoError(t, err)
		assert.True(t, has)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls through to invoices when no quotes exist", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "quotes" WHERE company_id = \$1 AND client_id = \$2`).
			WithArgs(companyID, clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE company_id = \$1 AND client_id = \$2`).
			WithArgs(companyID, clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

		has, err := repo.HasDocuments(ctx, companyID, clientID)
		require.NoError(t, err)
		assert.True(t, has)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("false without any documents", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "quotes"`).
			WithArgs(companyID, clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices"`).
			WithArgs(companyID, clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

		has, err := repo.HasDocuments(ctx, companyID, clientID)
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()

	t.Run("deleting an absent client is a not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(gormDB)

		mock.ExpectExec(`DELETE FROM "clients" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, clientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), companyID, clientID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
