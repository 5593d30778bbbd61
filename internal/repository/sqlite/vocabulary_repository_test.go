package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/repository/sqlite"
	"github.com/vytor/lexiflash/internal/testutil"
)

type VocabularyRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.VocabularyRepository
}

func (s *VocabularyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewVocabularyRepository(s.db)
}

func (s *VocabularyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *VocabularyRepositorySuite) seed() {
	_, err := s.repo.UpsertBatch(context.Background(), []models.VocabularyEntry{
		{Term: "gato", Translation: "cat", Language: "es", Level: "A1"},
		{Term: "perro", Translation: "dog", Language: "es", Level: "A1"},
		{Term: "murciélago", Translation: "bat", Language: "es", Level: "B1"},
		{Term: "chat", Translation: "cat", Language: "fr", Level: "A1"},
	})
	s.Require().NoError(err)
}

func (s *VocabularyRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	e, err := s.repo.Insert(ctx, models.VocabularyEntry{
		Term: "gato", Translation: "cat", Language: "es", Example: "El gato duerme.",
	})
	s.Require().NoError(err)
	s.Assert().Greater(e.ID, int64(0))

	got, err := s.repo.Get(ctx, e.ID)
	s.Require().NoError(err)
	s.Assert().Equal("El gato duerme.", got.Example)

	_, err = s.repo.Get(ctx, 999)
	s.Assert().ErrorIs(err, repository.ErrNotFound)
}

func (s *VocabularyRepositorySuite) TestInsert_Duplicate() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, models.VocabularyEntry{Term: "gato", Translation: "cat", Language: "es"})
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, models.VocabularyEntry{Term: "gato", Translation: "kitty", Language: "es"})
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *VocabularyRepositorySuite) TestUpsertBatch_ReusesExistingRows() {
	ctx := context.Background()
	existing, err := s.repo.Insert(ctx, models.VocabularyEntry{Term: "gato", Translation: "cat", Language: "es"})
	s.Require().NoError(err)

	stored, err := s.repo.UpsertBatch(ctx, []models.VocabularyEntry{
		{Term: "perro", Translation: "dog", Language: "es"},
		{Term: "gato", Translation: "kitty", Language: "es"},
	})
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Assert().Equal("perro", stored[0].Term)
	s.Assert().Equal(existing.ID, stored[1].ID)
	s.Assert().Equal("cat", stored[1].Translation)

	n, err := s.repo.Count(ctx, models.VocabularyFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(2, n)
}

func (s *VocabularyRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	s.seed()

	tests := []struct {
		name   string
		filter models.VocabularyFilter
		want   []string
	}{
		{"all", models.VocabularyFilter{}, []string{"chat", "gato", "murciélago", "perro"}},
		{"language", models.VocabularyFilter{Language: "es"}, []string{"gato", "murciélago", "perro"}},
		{"level", models.VocabularyFilter{Language: "es", Level: "B1"}, []string{"murciélago"}},
		{"search translation", models.VocabularyFilter{Search: "cat"}, []string{"chat", "gato"}},
		{"paged", models.VocabularyFilter{Limit: 2, Offset: 1}, []string{"gato", "murciélago"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, err := s.repo.List(ctx, tt.filter)
			s.Require().NoError(err)
			terms := make([]string, 0, len(entries))
			for _, e := range entries {
				terms = append(terms, e.Term)
			}
			s.Assert().Equal(tt.want, terms)
		})
	}
}

func (s *VocabularyRepositorySuite) TestCount_IgnoresPaging() {
	s.seed()

	n, err := s.repo.Count(context.Background(), models.VocabularyFilter{Language: "es", Limit: 1})
	s.Require().NoError(err)
	s.Assert().Equal(3, n)
}

func TestVocabularyRepositorySuite(t *testing.T) {
	suite.Run(t, new(VocabularyRepositorySuite))
}
