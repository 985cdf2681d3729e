package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CommentRepositoryTestSuite тестовый suite для PostgreSQL repository
type CommentRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  CommentRepository
	sqlDB *sql.DB
}

func TestCommentRepositorySuite(t *testing.T) {
	suite.Run(t, new(CommentRepositoryTestSuite))
}

func (s *CommentRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewCommentRepository(s.db)
}

func (s *CommentRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func commentColumns() []string {
	return []string{"id", "product_id", "user_id", "username", "content", "is_approved", "created_at", "updated_at"}
}

// ===================== GetByID Tests =====================

func (s *CommentRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	commentID := uuid.New()
	productID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(commentColumns()).
		AddRow(commentID, productID, userID, "alice", "Great phone", false, now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE id = $1`)).
		WithArgs(commentID, 1).
		WillReturnRows(rows)

	comment, err := s.repo.GetByID(ctx, commentID)

	s.NoError(err)
	s.NotNil(comment)
	s.Equal(commentID, comment.ID)
	s.Equal(productID, comment.ProductID)
	s.Equal(userID, comment.UserID)
	s.Equal("alice", comment.Username)
	s.False(comment.IsApproved)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE id = $1`)).
		WithArgs(commentID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	comment, err := s.repo.GetByID(ctx, commentID)

	s.Nil(comment)
	s.ErrorIs(err, ErrCommentNotFound)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByUserID Tests =====================

func (s *CommentRepositoryTestSuite) TestGetByUserID_FiltersByAuthor() {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(commentColumns()).
		AddRow(uuid.New(), uuid.New(), userID, "alice", "First", false, now, now).
		AddRow(uuid.New(), uuid.New(), userID, "alice", "Second", true, now.Add(-time.Hour), now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(userID).
		WillReturnRows(rows)

	comments, err := s.repo.GetByUserID(ctx, userID)

	s.NoError(err)
	s.Len(comments, 2)
	for _, c := range comments {
		s.Equal(userID, c.UserID)
	}

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByApproval Tests =====================

func (s *CommentRepositoryTestSuite) TestGetByApproval_Pending() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(commentColumns()).
		AddRow(uuid.New(), uuid.New(), uuid.New(), "alice", "Pending one", false, now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE is_approved = $1 ORDER BY created_at DESC`)).
		WithArgs(false).
		WillReturnRows(rows)

	comments, err := s.repo.GetByApproval(ctx, false)

	s.NoError(err)
	s.Len(comments, 1)
	s.False(comments[0].IsApproved)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetApprovedByProductID Tests =====================

func (s *CommentRepositoryTestSuite) TestGetApprovedByProductID() {
	ctx := context.Background()
	productID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(commentColumns()).
		AddRow(uuid.New(), productID, uuid.New(), "alice", "Approved one", true, now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE product_id = $1 AND is_approved = $2 ORDER BY created_at DESC`)).
		WithArgs(productID, true).
		WillReturnRows(rows)

	comments, err := s.repo.GetApprovedByProductID(ctx, productID)

	s.NoError(err)
	s.Len(comments, 1)
	s.True(comments[0].IsApproved)
	s.Equal(productID, comments[0].ProductID)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== CountByApproval Tests =====================

func (s *CommentRepositoryTestSuite) TestCountByApproval() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(7))

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE is_approved = $1`)).
		WithArgs(false).
		WillReturnRows(rows)

	count, err := s.repo.CountByApproval(ctx, false)

	s.NoError(err)
	s.Equal(int64(7), count)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Create Tests =====================

func (s *CommentRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	now := time.Now()

	comment := &entity.Comment{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		UserID:     uuid.New(),
		Username:   "alice",
		Content:    "Great phone",
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(ctx, comment)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Update Tests =====================

func (s *CommentRepositoryTestSuite) TestUpdate_Success() {
	ctx := context.Background()

	comment := &entity.Comment{
		ID:      uuid.New(),
		Content: "Edited text",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Update(ctx, comment)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	comment := &entity.Comment{
		ID:      uuid.New(),
		Content: "Edited text",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectCommit()

	err := s.repo.Update(ctx, comment)

	s.ErrorIs(err, ErrCommentNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== SetApproval Tests =====================

func (s *CommentRepositoryTestSuite) TestSetApproval_Success() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.SetApproval(ctx, commentID, true)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestSetApproval_NotFound() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectCommit()

	err := s.repo.SetApproval(ctx, commentID, true)

	s.ErrorIs(err, ErrCommentNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestSetApproval_DBError() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.SetApproval(ctx, commentID, true)

	s.Error(err)
	s.NotErrorIs(err, ErrCommentNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *CommentRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE id = $1`)).
		WithArgs(commentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, commentID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	commentID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE id = $1`)).
		WithArgs(commentID).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, commentID)

	s.ErrorIs(err, ErrCommentNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== DeleteByProductID Tests =====================

func (s *CommentRepositoryTestSuite) TestDeleteByProductID_Success() {
	ctx := context.Background()
	productID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE product_id = $1`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	s.mock.ExpectCommit()

	err := s.repo.DeleteByProductID(ctx, productID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CommentRepositoryTestSuite) TestDeleteByProductID_NoComments() {
	ctx := context.Background()
	productID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE product_id = $1`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Товар без комментариев - не ошибка
	err := s.repo.DeleteByProductID(ctx, productID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== NewCommentRepository Tests =====================

func TestNewCommentRepository(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	repo := NewCommentRepository(db)

	assert.NotNil(t, repo)
}
