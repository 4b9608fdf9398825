package repositories

import (
	"context"
	"testing"

	"expense-tracker/internal/database"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestCategoryRepository(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

type CategoryRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  CategoryRepositoryInterface
	ctx   context.Context
	owner *models.User
	other *models.User
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.ctx = context.Background()
	s.owner = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")
}

func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestListByUser_OrderedAndScoped() {
	database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Travel")
	database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Books")
	database.CreateTestCategory(s.T(), s.db, s.other.ID, "Hidden")

	categories, err := s.repo.ListByUser(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(categories, 2)
	s.Equal("Books", categories[0].Name)
	s.Equal("Travel", categories[1].Name)
}

func (s *CategoryRepositorySuite) TestListByUser_EmptyIsNotNil() {
	categories, err := s.repo.ListByUser(s.ctx, s.owner.ID)
	s.NoError(err)
	s.NotNil(categories)
	s.Empty(categories)
}

func (s *CategoryRepositorySuite) TestGetByID_OtherUserIsNotFound() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")

	found, err := s.repo.GetByID(s.ctx, s.owner.ID, category.ID)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal("Food", found.Name)

	found, err = s.repo.GetByID(s.ctx, s.other.ID, category.ID)
	s.NoError(err)
	s.Nil(found)
}

func (s *CategoryRepositorySuite) TestCreate_DuplicateNamePerUser() {
	s.Require().NoError(s.repo.Create(s.ctx, &models.Category{UserID: s.owner.ID, Name: "Food"}))

	err := s.repo.Create(s.ctx, &models.Category{UserID: s.owner.ID, Name: "Food"})
	s.ErrorIs(err, ErrCategoryNameExists)

	// the same name in another namespace is fine
	s.NoError(s.repo.Create(s.ctx, &models.Category{UserID: s.other.ID, Name: "Food"}))
}

func (s *CategoryRepositorySuite) TestUpdate_AppliesAndClearsFields() {
	color := "#FFFFFF"
	category := &models.Category{UserID: s.owner.ID, Name: "Food", Color: &color}
	s.Require().NoError(s.repo.Create(s.ctx, category))

	updated, err := s.repo.Update(s.ctx, s.owner.ID, category.ID, map[string]interface{}{
		"name":  "Groceries",
		"color": nil,
	})
	s.Require().NoError(err)
	s.Equal("Groceries", updated.Name)
	s.Nil(updated.Color)
	s.False(updated.UpdatedAt.Before(category.UpdatedAt))
}

func (s *CategoryRepositorySuite) TestUpdate_OtherUserIsNotFound() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")

	_, err := s.repo.Update(s.ctx, s.other.ID, category.ID, map[string]interface{}{"name": "Stolen"})
	s.ErrorIs(err, ErrCategoryNotFound)

	found, err := s.repo.GetByID(s.ctx, s.owner.ID, category.ID)
	s.NoError(err)
	s.Equal("Food", found.Name)
}

func (s *CategoryRepositorySuite) TestUpdate_DuplicateName() {
	database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")
	travel := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Travel")

	_, err := s.repo.Update(s.ctx, s.owner.ID, travel.ID, map[string]interface{}{"name": "Food"})
	s.ErrorIs(err, ErrCategoryNameExists)
}

func (s *CategoryRepositorySuite) TestDelete() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")

	s.ErrorIs(s.repo.Delete(s.ctx, s.other.ID, category.ID), ErrCategoryNotFound)
	s.NoError(s.repo.Delete(s.ctx, s.owner.ID, category.ID))
	s.ErrorIs(s.repo.Delete(s.ctx, s.owner.ID, category.ID), ErrCategoryNotFound)
}

func (s *CategoryRepositorySuite) TestDelete_ReferencedByExpense() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")
	s.Require().NoError(s.db.Create(&models.Expense{
		UserID:      s.owner.ID,
		CategoryID:  category.ID,
		Amount:      decimal.RequireFromString("4.20"),
		Description: "Lunch",
		ExpenseDate: models.NewDate(2024, 1, 2),
	}).Error)

	count, err := s.repo.CountExpenses(s.ctx, s.owner.ID, category.ID)
	s.NoError(err)
	s.Equal(int64(1), count)

	s.ErrorIs(s.repo.Delete(s.ctx, s.owner.ID, category.ID), ErrCategoryInUse)
}

func (s *CategoryRepositorySuite) TestExists() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")

	exists, err := s.repo.Exists(s.ctx, s.owner.ID, category.ID)
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.Exists(s.ctx, s.other.ID, category.ID)
	s.NoError(err)
	s.False(exists)

	exists, err = s.repo.Exists(s.ctx, s.owner.ID, uuid.New())
	s.NoError(err)
	s.False(exists)
}

func (s *CategoryRepositorySuite) TestExistsByName() {
	category := database.CreateTestCategory(s.T(), s.db, s.owner.ID, "Food")

	exists, err := s.repo.ExistsByName(s.ctx, s.owner.ID, "Food", nil)
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByName(s.ctx, s.owner.ID, "Food", &category.ID)
	s.NoError(err)
	s.False(exists)

	exists, err = s.repo.ExistsByName(s.ctx, s.other.ID, "Food", nil)
	s.NoError(err)
	s.False(exists)
}
